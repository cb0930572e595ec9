// Package autopark evolves a controller that parks a simulated car.
//
// A genetic algorithm searches 180-bit genomes. Each genome decodes into two
// affine maps from eight ray sensors to a throttle and a steering decision,
// and is scored by driving one episode in an 800x600 parking lot.
//
// The module is split into:
//
//	evo        genomes, selection, crossover, mutation, INI config, checkpoints
//	evo/brain  gene codec and the linear controller
//	sim        car kinematics, collisions, sensors and per-step reward
//	train      episode rollouts, parallel scoring and the training loop
//	server     HTTP endpoint that scores a posted genome
//	viewer     terminal renderer with manual driving and genome replay
//	audio      tones for parking events, played by audio/device
//
// Basic usage:
//
//	config, err := evo.LoadConfig("configs/parking.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	trainer, err := train.NewTrainer(config, slog.Default())
//	if err != nil {
//		log.Fatalf("Error creating trainer: %v", err)
//	}
//
//	if err := trainer.Run(context.Background()); err != nil {
//		log.Fatalf("Error training: %v", err)
//	}
//
//	best, fitness := trainer.Population.Best()
//	fmt.Printf("best fitness %.2f: %s\n", fitness, best)
package autopark

// Package volbench embeds the volume benchmark in other programs.
//
// A Volbench reads one file from a mounted volume, hashes it, writes it
// back to a second file and reports the timings:
//
//	cfg := volbench.DefaultConfig()
//	cfg.Volume = "/mnt/sd"
//	v, err := volbench.New(cfg, volbench.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	report, err := v.Run(ctx)
//
// By default volumes are directories on the host file system. Supply a
// different Mounter with WithMounter to benchmark another backend.
package volbench

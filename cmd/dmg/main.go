package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/valep27/dmgcore/internal/console"
	"github.com/valep27/dmgcore/internal/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmg"
	app.Description = "A headless DMG (Game Boy) core smoke-test driver"
	app.Usage = "dmg [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "boot",
			Usage: "Path to a boot ROM image (optional; skips straight to post-boot state if omitted)",
		},
		cli.StringFlag{
			Name:  "save",
			Usage: "Path to a battery-backed save file for cartridges with external RAM",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run before exiting",
			Value: 60,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmg: fatal", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) (err error) {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode failure: %v", r)
		}
	}()

	romData, readErr := os.ReadFile(romPath)
	if readErr != nil {
		return readErr
	}

	var bootROM []byte
	if bootPath := c.String("boot"); bootPath != "" {
		bootROM, err = os.ReadFile(bootPath)
		if err != nil {
			return err
		}
	}

	rt, err := console.New(romData, bootROM, c.String("save"))
	if err != nil {
		return err
	}

	frames := c.Int("frames")
	slog.Info("running headless smoke test", "rom", romPath, "frames", frames)

	frameDuration := timing.FrameDuration()
	for i := 0; i < frames; i++ {
		rt.Step(frameDuration)
		rt.DrainSamples(2048) // drained and discarded: no audio backend in this driver
	}

	slog.Info("headless run completed", "frames", frames)
	return nil
}

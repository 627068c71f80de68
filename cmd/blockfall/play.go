package main

import (
	"fmt"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const overlayHistoryFrames = 120

func newPlayCmd(a *app) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Long: `Open the game window.

Controls: up rotates, down held drops faster, left and right move,
space drops the piece, escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(debug || a.conf.Window.Debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "show the debug overlay")
	return cmd
}

func (a *app) play(debug bool) error {
	conf := a.conf

	b, err := board.New(conf.Board.Height, conf.Board.Width)
	if err != nil {
		return fmt.Errorf("could not create board: %w", err)
	}

	session := loop.NewSession(b, conf.Window.FPS, a.log)
	scheduler := loop.NewDefaultScheduler(session)

	layout := render.Layout{
		Title:    conf.Window.Title,
		Width:    conf.Window.Width,
		Height:   conf.Window.Height,
		OriginX:  conf.Window.OriginX,
		OriginY:  conf.Window.OriginY,
		CellSize: conf.Window.CellSize,
	}

	game := render.NewGame(session, scheduler, render.DefaultKeymap(), layout)
	if debug {
		game.WithOverlay(render.NewOverlay(layout, session, scheduler, overlayHistoryFrames))
	}

	err = game.Run()

	session.Logger().WithFields(logrus.Fields{
		"score":  b.Score(),
		"lines":  b.LinesCleared(),
		"state":  b.State().String(),
		"frames": scheduler.Stats().Frames,
	}).Info("session ended")

	return err
}

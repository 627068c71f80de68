package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/render/term"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type simOptions struct {
	seed      uint64
	frames    int
	realtime  bool
	showBoard bool
}

func newSimCmd(a *app) *cobra.Command {
	opts := simOptions{}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play a seeded game headlessly and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sim(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed for piece selection and simulated input")
	cmd.Flags().IntVar(&opts.frames, "frames", 20000, "maximum number of frames to run")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "pace frames at the configured fps")
	cmd.Flags().BoolVar(&opts.showBoard, "board", true, "print the final board after the report")
	return cmd
}

// autoplaySystem feeds random actions into the session and ends it at game
// over or when the frame budget runs out.
type autoplaySystem struct {
	rng    *rand.Rand
	budget int
	frames int
}

var autoplayActions = []loop.Action{
	loop.ActionNone, loop.ActionNone, loop.ActionNone, loop.ActionNone,
	loop.ActionMoveLeft, loop.ActionMoveRight, loop.ActionRotate,
	loop.ActionSoftDropBegin, loop.ActionSoftDropEnd, loop.ActionHardDrop,
}

func (s *autoplaySystem) Execute(frame *loop.UpdateFrame) {
	session := frame.Session
	s.frames++
	if session.Board.State() == board.GameOver || s.frames > s.budget {
		session.Finish()
		return
	}
	session.Push(autoplayActions[s.rng.IntN(len(autoplayActions))])
}

func (a *app) sim(ctx context.Context, out io.Writer, opts simOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conf := a.conf

	b, err := board.New(conf.Board.Height, conf.Board.Width, board.WithSource(board.NewSeededSource(opts.seed)))
	if err != nil {
		return fmt.Errorf("could not create board: %w", err)
	}

	session := loop.NewSession(b, conf.Window.FPS, a.log)
	scheduler := loop.NewScheduler(session)
	scheduler.Register(&autoplaySystem{
		rng:    rand.New(rand.NewPCG(opts.seed, opts.seed+1)),
		budget: opts.frames,
	})
	scheduler.Register(&loop.SpawnSystem{})
	scheduler.Register(&loop.GravitySystem{})
	scheduler.Register(&loop.InputSystem{})
	scheduler.Register(&loop.StatusSystem{})

	report := &Report{
		Seed:     opts.seed,
		Height:   b.Height(),
		Width:    b.Width(),
		Frames:   opts.frames,
		FPS:      session.FPS,
		Realtime: opts.realtime,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, opts.frames),
		},
	}

	session.Logger().WithFields(logrus.Fields{
		"seed":   opts.seed,
		"frames": opts.frames,
	}).Info("simulation started")

	startTime := time.Now()
	if opts.realtime {
		interval := time.Second / time.Duration(session.FPS)
		scheduler.Run(ctx, interval)
	} else {
		dt := 1.0 / float64(session.FPS)
		for !session.Finished() && ctx.Err() == nil {
			updateStart := time.Now()
			scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}
	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()

	report.State = b.State().String()
	report.Score = b.Score()
	report.Lines = b.LinesCleared()
	report.Pieces = b.PiecesLocked()
	report.Scheduler = scheduler.Stats()

	session.Logger().WithFields(logrus.Fields{
		"score": report.Score,
		"state": report.State,
	}).Info("simulation finished")

	if err := report.Generate(out); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	if opts.showBoard {
		if err := term.WriteBoard(out, b); err != nil {
			return fmt.Errorf("failed to print board: %w", err)
		}
	}
	return nil
}

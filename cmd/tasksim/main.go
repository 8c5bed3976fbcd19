// cmd/tasksim/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// tasksim is a small CLI harness that builds a synthetic ordered task,
// replays a generated fix stream through it, and prints the resulting
// stats. It exists to exercise pkg/task end to end the way the teacher's
// cmd/ programs exercise its simulation core directly from the command
// line.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	gomath "math"

	"github.com/davecgh/go-spew/spew"
	"github.com/mmp/glidetask/pkg/log"
	"github.com/mmp/glidetask/pkg/oz"
	"github.com/mmp/glidetask/pkg/rand"
	"github.com/mmp/glidetask/pkg/task"
	"github.com/mmp/glidetask/pkg/waypoint"
)

type printEvents struct {
	lg *log.Logger
}

func (p printEvents) EnterTransition(tp *task.TaskPoint) {
	p.lg.Infof("enter transition: %s", tp.Waypoint.Name())
}
func (p printEvents) ExitTransition(tp *task.TaskPoint) {
	p.lg.Infof("exit transition: %s", tp.Waypoint.Name())
}
func (p printEvents) ActiveAdvanced(tp *task.TaskPoint, index int) {
	p.lg.Infof("active advanced to %d (%s)", index, tp.Waypoint.Name())
}
func (p printEvents) RequestArm(tp *task.TaskPoint) {
	p.lg.Infof("request arm: %s", tp.Waypoint.Name())
}
func (p printEvents) TaskStart() { p.lg.Info("task start") }
func (p printEvents) TaskFinish() { p.lg.Info("task finish") }

func main() {
	var (
		logLevel = flag.String("log_level", "info", "logging level: debug, info, warn, error")
		dump     = flag.Bool("dump", false, "dump final stats with go-spew instead of a summary line")
	)
	flag.Parse()

	lg := log.New(false, *logLevel, "")

	wps := waypoint.NewDatabase()
	start := waypoint.New("START", 0.0, 0.0)
	finish := waypoint.New("FINISH", 1.0, 0.0)
	wps.Add(start)
	wps.Add(finish)

	startZone := oz.NewCylinder(start.Location(), 1000)
	finishZone := oz.NewCylinder(finish.Location(), 1000)

	ot := task.NewOrderedTask(task.DefaultOrderedTaskSettings(), printEvents{lg: lg}, wps, lg)
	ot.Append(task.NewTaskPoint(start, startZone, task.Start))
	ot.Append(task.NewTaskPoint(finish, finishZone, task.Finish))

	if el := ot.CheckTask(); el.HaveErrors() {
		el.PrintErrors(lg)
		os.Exit(1)
	}

	replay(ot, lg)

	stats := ot.Stats()
	if *dump {
		spew.Dump(stats)
		return
	}
	fmt.Printf("task_finished=%v start=%+v nominal_distance=%.0fm\n",
		stats.TaskFinished, stats.Start, ot.ScanDistanceNominal())
}

// replay generates a synthetic straight-line fix stream from start to
// finish and feeds it through CheckTransitions, logging each tick.
func replay(ot *task.OrderedTask, lg *log.Logger) {
	r := rand.New()
	r.Seed(1)

	startLoc := ot.Point(0).Waypoint.Location()
	finishLoc := ot.Point(ot.Len() - 1).Waypoint.Location()
	total := startLoc.Distance(finishLoc)

	base := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	const groundSpeed = 30.0 // m/s
	steps := int(total/groundSpeed) + 10

	var prev task.AircraftState
	for i := 0; i <= steps; i++ {
		frac := gomath.Min(1, float64(i)*groundSpeed/total)
		// small jitter so consecutive fixes aren't degenerate
		jitter := (float64(r.Float32()) - 0.5) * 5
		loc := startLoc.IntermediatePoint(finishLoc, frac*total+jitter)

		state := task.AircraftState{
			Location:    loc,
			Altitude:    1000,
			GroundSpeed: groundSpeed,
			Time:        base.Add(time.Duration(i) * time.Second),
			Flying:      true,
		}
		if i == 0 {
			prev = state
		}
		ot.CheckTransitions(state, prev)
		ot.ScanDistanceMin(state.Location, false)
		prev = state

		if ot.TaskFinished() {
			lg.Info("finished, stopping replay")
			break
		}
	}
}

package render

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// Overlay draws Dear ImGui debug windows over the game: a board summary and
// per-system scheduler timings.
type Overlay struct {
	*ebitenbackend.EbitenBackend

	session   *loop.Session
	scheduler *loop.Scheduler

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewOverlay creates the ImGui backend and its window. It replaces the
// plain ebiten window setup.
func NewOverlay(layout Layout, session *loop.Session, scheduler *loop.Scheduler, historyFrames int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(layout.Title, layout.Width, layout.Height)
	imgui.CurrentIO().SetIniFilename("")

	historyFrames = max(historyFrames, 1)
	return &Overlay{
		EbitenBackend: backend,
		session:       session,
		scheduler:     scheduler,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Build emits this frame's ImGui windows. Call between BeginFrame and
// EndFrame.
func (o *Overlay) Build() {
	o.buildBoard()
	o.buildScheduler()
}

func (o *Overlay) buildBoard() {
	b := o.session.Board
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Session: %s", o.session.ID))
	imgui.Text(fmt.Sprintf("State: %s", b.State()))
	imgui.Text(fmt.Sprintf("Score: %d", b.Score()))
	imgui.Text(fmt.Sprintf("Lines: %d  Pieces: %d", b.LinesCleared(), b.PiecesLocked()))
	imgui.Text(fmt.Sprintf("Frame: %d  Soft drop: %t", o.session.Frame(), o.session.SoftDrop()))

	if p, ok := b.Active(); ok {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Piece: %s rot %d at (%d, %d)", p.Kind, p.Rotation, p.X, p.Y))
	}

	imgui.End()
}

func (o *Overlay) buildScheduler() {
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := o.scheduler.Stats()

	var frameTime float32
	for _, s := range stats.Systems {
		frameTime += float32(s.LastDuration.Microseconds()) / 1000.0
	}
	o.frameHistory[o.frameIndex] = frameTime
	o.frameIndex = (o.frameIndex + 1) % o.historyFrames

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Separator()
	imgui.Text("Update Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &o.frameHistory[0], int32(len(o.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

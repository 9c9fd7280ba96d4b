package ui

import (
	"fmt"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/blackjack/internal/game"
)

// DebugOverlay shows frame timing and scene statistics in a corner.
type DebugOverlay struct {
	Enabled bool

	frames    int
	elapsedMs float64
	fps       float64
	frameTime float64

	memStats      runtime.MemStats
	memUpdateTime float64
}

// NewDebugOverlay returns a disabled overlay.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{}
}

// Update accumulates one frame of deltaMs. FPS is averaged over half a
// second; memory stats refresh every second.
func (d *DebugOverlay) Update(deltaMs float64) {
	d.frames++
	d.elapsedMs += deltaMs
	if d.elapsedMs >= 500 {
		d.fps = float64(d.frames) * 1000 / d.elapsedMs
		d.frameTime = d.elapsedMs / float64(d.frames)
		d.frames = 0
		d.elapsedMs = 0
	}

	if !d.Enabled {
		return
	}
	d.memUpdateTime += deltaMs
	if d.memUpdateTime >= 1000 {
		runtime.ReadMemStats(&d.memStats)
		d.memUpdateTime = 0
	}
}

// Render draws the overlay in the bottom-left corner.
func (d *DebugOverlay) Render(app *game.App, size imgui.Vec2) {
	if !d.Enabled {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(10, size.Y-190))
	imgui.SetNextWindowSize(imgui.NewVec2(250, 0))
	imgui.SetNextWindowBgAlpha(0.6)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	if imgui.BeginV("##DebugOverlay", nil, flags) {
		imgui.TextColored(fpsColor(d.fps), fmt.Sprintf("FPS: %.1f", d.fps))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", d.frameTime))

		sc := app.Scene()
		pos := sc.Camera().Position()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("State: %s", app.State()))
		imgui.Text(fmt.Sprintf("Camera: %.2f, %.2f, %.2f", pos.X(), pos.Y(), pos.Z()))
		imgui.Text(fmt.Sprintf("Models: %d  Entities: %d", len(sc.Models()), sc.EntityCount()))

		stats := sc.Textures().Stats()
		imgui.Text(fmt.Sprintf("Textures: %d (hits %d, misses %d)", sc.Textures().Len(), stats.Hits, stats.Misses))

		imgui.Separator()
		imgui.Text(fmt.Sprintf("Alloc: %s  Sys: %s", formatBytes(int64(d.memStats.Alloc)), formatBytes(int64(d.memStats.Sys))))
		imgui.Text(fmt.Sprintf("GC: %d", d.memStats.NumGC))
	}
	imgui.End()
}

func fpsColor(fps float64) imgui.Vec4 {
	switch {
	case fps < 30:
		return imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	case fps < 60:
		return imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
	default:
		return imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
	}
}

// formatBytes formats byte count to human readable string.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

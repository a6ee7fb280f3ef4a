package ui

import (
	"fmt"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/groundwork/internal/session"
)

// memInterval is how often memory stats are refreshed, in seconds.
const memInterval = 2.0

// DebugOverlay shows frame, body and scene figures of a session in the top
// left corner, with a panel of overlay toggles below.
type DebugOverlay struct {
	memStats   runtime.MemStats
	memElapsed float64

	Enabled    bool
	ShowMemory bool
}

// NewDebugOverlay returns an enabled overlay.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{Enabled: true}
}

// Update advances the memory refresh timer by deltaMs.
func (d *DebugOverlay) Update(deltaMs float64) {
	d.memElapsed += deltaMs / 1000.0
	if d.memElapsed >= memInterval {
		runtime.ReadMemStats(&d.memStats)
		d.memElapsed = 0
	}
}

// Render draws the overlay for ss. Checkbox changes write straight into ss.
func (d *DebugOverlay) Render(ss *session.Session) {
	if !d.Enabled {
		return
	}

	pos, _ := Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+10, pos.Y+10))
	imgui.SetNextWindowSize(imgui.NewVec2(260, 0))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##DebugOverlay", nil, flags) {
		d.renderFPS(ss)
		d.renderBody(ss)
		d.renderScene(ss)
		if d.ShowMemory {
			d.renderMemory()
		}
		d.renderToggles(ss)
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (d *DebugOverlay) renderFPS(ss *session.Session) {
	imgui.TextColored(fpsColor(ss.Frames.FPS()), fmt.Sprintf("FPS: %.1f", ss.Frames.FPS()))
	imgui.SameLine()
	imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", ss.Frames.FrameTime()))
}

func (d *DebugOverlay) renderBody(ss *session.Session) {
	p := ss.Body.Position
	tile := ss.Scene.Terrain.TileAt(p.X(), p.Z())

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Mode: %s", ss.Mode))
	imgui.Text(fmt.Sprintf("Pos: %.1f, %.1f, %.1f", p.X(), p.Y(), p.Z()))
	imgui.Text(fmt.Sprintf("Tile: %d, %d", tile.X, tile.Z))
	if ss.Body.HasDestination {
		imgui.Text(fmt.Sprintf("Walking to: %.1f, %.1f (+%d)", ss.Body.DestX, ss.Body.DestZ, len(ss.Body.Waypoints)))
	}
}

func (d *DebugOverlay) renderScene(ss *session.Session) {
	c := ss.Counts
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Meshes: %d", c.Meshes))
	imgui.Text(fmt.Sprintf("Instances: %d (%d models)", c.Instances, c.Models))
	imgui.Text(fmt.Sprintf("Triangles: %d", c.Triangles))
	imgui.Text(fmt.Sprintf("Seed: %d", ss.Seed))
	if name := ss.SelectedName(); name != "" {
		imgui.Text(fmt.Sprintf("Selected: #%d %s", ss.Selected, name))
	} else {
		imgui.TextDisabled("Selected: none")
	}
}

func (d *DebugOverlay) renderMemory() {
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Alloc: %s", formatBytes(int64(d.memStats.Alloc))))
	imgui.Text(fmt.Sprintf("Sys: %s", formatBytes(int64(d.memStats.Sys))))
	imgui.Text(fmt.Sprintf("GC: %d", d.memStats.NumGC))
}

func (d *DebugOverlay) renderToggles(ss *session.Session) {
	if imgui.CollapsingHeaderTreeNodeFlagsV("Overlays", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Checkbox("Grid (G)", &ss.ShowGrid)
		imgui.Checkbox("Normals (N)", &ss.ShowNormals)
		imgui.Checkbox("Tangents (T)", &ss.ShowTangents)
		imgui.Checkbox("Memory", &d.ShowMemory)
	}
}

// FPS tiers for coloring.
const (
	fpsGood = 60
	fpsOK   = 30
)

func fpsTier(fps float64) int {
	switch {
	case fps >= fpsGood:
		return 2
	case fps >= fpsOK:
		return 1
	default:
		return 0
	}
}

var fpsColors = [3][4]float32{
	{1.0, 0.2, 0.2, 1.0}, // red
	{1.0, 1.0, 0.2, 1.0}, // yellow
	{0.2, 1.0, 0.2, 1.0}, // green
}

func fpsColor(fps float64) imgui.Vec4 {
	c := fpsColors[fpsTier(fps)]
	return imgui.NewVec4(c[0], c[1], c[2], c[3])
}

// formatBytes formats a byte count for display.
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

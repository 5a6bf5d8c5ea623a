package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SceneNode is one drawable owned by the stage. The simulation holds
// pointers to nodes but only ever mutates them through Stage calls.
type SceneNode struct {
	sheet  *ebiten.Image
	frameW int
	frameH int
	cols   int

	x, y     float64
	frame    int
	flipX    bool
	alpha    float64
	label    string
	attached bool
}

// Position returns the node's screen position in pixels.
func (n *SceneNode) Position() (float64, float64) {
	return n.x, n.y
}

// Frame returns the node's current sheet frame.
func (n *SceneNode) Frame() int {
	return n.frame
}

// Flipped reports whether the node draws mirrored.
func (n *SceneNode) Flipped() bool {
	return n.flipX
}

// Stage is the scene-graph collaborator: a flat draw list in attach order.
type Stage struct {
	nodes []*SceneNode
}

func NewStage() *Stage {
	return &Stage{}
}

// NewSpriteNode creates a detached node over a sprite sheet laid out as a
// grid of frameW x frameH cells.
func (st *Stage) NewSpriteNode(sheet *ebiten.Image, frameW, frameH int) *SceneNode {
	cols := 1
	if sheet != nil && frameW > 0 {
		cols = sheet.Bounds().Dx() / frameW
		if cols < 1 {
			cols = 1
		}
	}
	return &SceneNode{sheet: sheet, frameW: frameW, frameH: frameH, cols: cols, alpha: 1}
}

// NewLabelNode creates a detached text node (floating damage labels).
func (st *Stage) NewLabelNode(text string) *SceneNode {
	return &SceneNode{label: text, alpha: 1}
}

func (st *Stage) Attach(n *SceneNode) {
	if n == nil || n.attached {
		return
	}
	n.attached = true
	st.nodes = append(st.nodes, n)
}

func (st *Stage) Detach(n *SceneNode) {
	if n == nil || !n.attached {
		return
	}
	n.attached = false
	for i, node := range st.nodes {
		if node == n {
			st.nodes = append(st.nodes[:i], st.nodes[i+1:]...)
			return
		}
	}
}

func (st *Stage) SetTransform(n *SceneNode, x, y float64) {
	if n == nil {
		return
	}
	n.x = x
	n.y = y
}

func (st *Stage) SetAlpha(n *SceneNode, a float64) {
	if n == nil {
		return
	}
	n.alpha = a
}

func (st *Stage) SetFrame(n *SceneNode, frame int) {
	if n == nil || frame < 0 {
		return
	}
	n.frame = frame
}

func (st *Stage) SetFlip(n *SceneNode, flipX bool) {
	if n == nil {
		return
	}
	n.flipX = flipX
}

// Destroy detaches the node and drops its texture reference.
func (st *Stage) Destroy(n *SceneNode) {
	if n == nil {
		return
	}
	st.Detach(n)
	n.sheet = nil
}

// Contains reports whether the node is currently in the draw list.
func (st *Stage) Contains(n *SceneNode) bool {
	for _, node := range st.nodes {
		if node == n {
			return true
		}
	}
	return false
}

func (st *Stage) Len() int {
	return len(st.nodes)
}

func (st *Stage) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	for _, n := range st.nodes {
		if n.label != "" {
			ebitenutil.DebugPrintAt(screen, n.label, int(n.x), int(n.y))
			continue
		}
		if n.sheet == nil || n.frameW <= 0 || n.frameH <= 0 {
			continue
		}
		col := n.frame % n.cols
		row := n.frame / n.cols
		rect := image.Rect(col*n.frameW, row*n.frameH, (col+1)*n.frameW, (row+1)*n.frameH)
		img, ok := n.sheet.SubImage(rect).(*ebiten.Image)
		if !ok {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		if n.flipX {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(n.frameW), 0)
		}
		op.GeoM.Translate(n.x, n.y)
		op.ColorScale.ScaleAlpha(float32(n.alpha))
		screen.DrawImage(img, op)
	}
}

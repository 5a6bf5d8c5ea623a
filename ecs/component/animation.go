package component

// Clip is one named animation: a frame sequence into the entity's sheet,
// playback speed and loop flag. Clip tables are read-only at runtime.
type Clip struct {
	Frames []int
	FPS    float64
	Loop   bool
}

// AnimationState selects the entity's current clip. Current changes only
// when the selected clip actually changes so looping clips don't restart
// every frame.
type AnimationState struct {
	Clips   map[string]Clip
	Current string
	FlipX   bool

	Frame float64 // cursor into the current clip's frame sequence
}

// FrameIndex returns the sheet frame for the current clip position.
func (a *AnimationState) FrameIndex() int {
	clip, ok := a.Clips[a.Current]
	if !ok || len(clip.Frames) == 0 {
		return 0
	}
	i := int(a.Frame)
	if i >= len(clip.Frames) {
		i = len(clip.Frames) - 1
	}
	return clip.Frames[i]
}

var AnimationStateComponent = NewComponent[AnimationState]()

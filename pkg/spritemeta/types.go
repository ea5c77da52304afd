package spritemeta

import "encoding/json"

// Sequence describes one animation strip on a sprite sheet. Fields left
// empty inherit from the parent sequence, if any.
type Sequence struct {
	Parent  string      `json:"parent"`
	Sheet   string      `json:"sheet"`
	Blend   string      `json:"blend"`
	Palette string      `json:"palette"`
	Offset  *[3]float32 `json:"offset"`
	Rate    *float32    `json:"rate"`
	Frames  []Frame     `json:"frames"`
}

// Frame is one source rectangle on the sheet.
type Frame struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// UnmarshalJSON accepts both the object form and the compact
// [x, y, width, height] array form.
func (f *Frame) UnmarshalJSON(data []byte) error {
	// First, try to unmarshal as an array
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err == nil {
		f.X, f.Y, f.Width, f.Height = arr[0], arr[1], arr[2], arr[3]
		return nil
	}

	// If that fails, try the object form
	type frameObject Frame
	var obj frameObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*f = Frame(obj)
	return nil
}

// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package detect labels object detections: class names, confidence filtering, pixel
// boxes and captions. Inference itself is done by an external Detector.
package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"

	"github.com/chewxy/math32"
)

// DefaultMinScore is the confidence below which detections are dropped
const DefaultMinScore = 0.5

// Box is a bounding box in coordinates normalized to the frame size
type Box struct {
	XMin   float32 `json:"xmin"`
	YMin   float32 `json:"ymin"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Rect converts the box to pixels of a w x h frame. Each coordinate is truncated
// toward zero.
func (b Box) Rect(w, h int) image.Rectangle {
	x := int(b.XMin * float32(w))
	y := int(b.YMin * float32(h))
	bw := int(b.Width * float32(w))
	bh := int(b.Height * float32(h))
	return image.Rect(x, y, x+bw, y+bh)
}

// Clamp clips the box to the unit frame. Detectors can report boxes that run
// past the frame edges.
func (b Box) Clamp() Box {
	x0 := clamp01(b.XMin)
	y0 := clamp01(b.YMin)
	x1 := clamp01(b.XMin + b.Width)
	y1 := clamp01(b.YMin + b.Height)
	return Box{XMin: x0, YMin: y0, Width: math32.Max(x1-x0, 0), Height: math32.Max(y1-y0, 0)}
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Min(math32.Max(v, 0), 1)
}

// Detection is one object found in a frame
type Detection struct {
	ClassID int     `json:"class_id"`
	Score   float32 `json:"score"`
	Box     Box     `json:"box"`
}

// Label is the class name of the detection
func (d Detection) Label() string {
	return Label(d.ClassID)
}

// Caption is the overlay text: the label and the score to two decimals
func (d Detection) Caption() string {
	return fmt.Sprintf("%s: %.2f", d.Label(), d.Score)
}

// Rect is the detection box in pixels of a w x h frame
func (d Detection) Rect(w, h int) image.Rectangle {
	return d.Box.Rect(w, h)
}

// Filter returns the detections scoring at least min, in their original order
func Filter(ds []Detection, min float32) []Detection {
	var out []Detection
	for _, d := range ds {
		if d.Score >= min {
			out = append(out, d)
		}
	}
	return out
}

// Lyrics joins the labels of ds so that a scene can be sung
func Lyrics(ds []Detection) string {
	lbs := make([]string, len(ds))
	for i, d := range ds {
		lbs[i] = d.Label()
	}
	return strings.Join(lbs, ", ")
}

// Detector finds objects in a frame
type Detector interface {
	Detect(ctx context.Context, frame image.Image) ([]Detection, error)
}

// Decode reads a JSON array of detections, as written by an external detector
func Decode(r io.Reader) ([]Detection, error) {
	var ds []Detection
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode detections: %w", err)
	}
	return ds, nil
}

// Replay is a Detector that returns the same detections for every frame
type Replay []Detection

func (rp Replay) Detect(ctx context.Context, _ image.Image) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Detection(nil), rp...), nil
}

// Outline draws the pixel box of every detection onto dst, thick pixels wide
func Outline(dst draw.Image, ds []Detection, c color.Color, thick int) {
	bnd := dst.Bounds()
	src := image.NewUniform(c)
	for _, d := range ds {
		r := d.Box.Clamp().Rect(bnd.Dx(), bnd.Dy()).Add(bnd.Min)
		edges := []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
			image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
			image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
		}
	}
}

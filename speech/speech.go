// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speech records where each sung unit falls in time
package speech

import (
	"fmt"
	"io"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Unit is one sung phoneme
type Unit struct {
	Name   string  `desc:"the phoneme symbol"`
	Type   string  `desc:"vowel, consonant or pause"`
	Start  float64 `desc:"start time of this unit in the song in milliseconds"`
	End    float64 `desc:"end time of this unit in the song in milliseconds"`
	Note   string  `desc:"melody note assigned to this position"`
	Hz     float64 `desc:"frequency of the note"`
	Accent float64 `desc:"vowel gain applied at this position, 0 for other units"`
}

// Dur is the length of the unit in milliseconds
func (u *Unit) Dur() float64 {
	return u.End - u.Start
}

// Sequence a sequence of speech units, for example the phonemes of a song
type Sequence struct {
	Sequence string  `desc:"the full sequence of phoneme symbols"`
	Units    []Unit  `desc:"the units of the sequence"`
	TimeStop float64 `desc:"end of the final unit in milliseconds"`
}

// Add appends a unit that starts where the previous one ended and lasts dur ms
func (seq *Sequence) Add(u Unit, dur float64) {
	u.Start = seq.TimeStop
	u.End = u.Start + dur
	seq.TimeStop = u.End
	seq.Units = append(seq.Units, u)
	seq.Sequence += u.Name
}

// Len is the number of units
func (seq *Sequence) Len() int {
	return len(seq.Units)
}

// Counts returns the number of units of each type
func (seq *Sequence) Counts() map[string]int {
	cnt := make(map[string]int)
	for _, u := range seq.Units {
		cnt[u.Type]++
	}
	return cnt
}

// ConfigTable sets the columns of the score table
func ConfigTable(dt *etable.Table, rows int) {
	dt.SetMetaData("name", "Score")
	dt.SetMetaData("desc", "timing of every sung phoneme")
	sch := etable.Schema{
		{"Index", etensor.INT64, nil, nil},
		{"Name", etensor.STRING, nil, nil},
		{"Type", etensor.STRING, nil, nil},
		{"Note", etensor.STRING, nil, nil},
		{"Hz", etensor.FLOAT64, nil, nil},
		{"Accent", etensor.FLOAT64, nil, nil},
		{"Start", etensor.FLOAT64, nil, nil},
		{"End", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, rows)
}

// Table returns the score as an etable, one row per unit
func (seq *Sequence) Table() *etable.Table {
	dt := &etable.Table{}
	ConfigTable(dt, len(seq.Units))
	for i, u := range seq.Units {
		dt.SetCellFloat("Index", i, float64(i))
		dt.SetCellString("Name", i, visible(u.Name))
		dt.SetCellString("Type", i, u.Type)
		dt.SetCellString("Note", i, u.Note)
		dt.SetCellFloat("Hz", i, u.Hz)
		dt.SetCellFloat("Accent", i, u.Accent)
		dt.SetCellFloat("Start", i, u.Start)
		dt.SetCellFloat("End", i, u.End)
	}
	return dt
}

// WriteCSV writes the score table as comma separated values with a header row
func (seq *Sequence) WriteCSV(w io.Writer) error {
	if err := seq.Table().WriteCSV(w, etable.Comma, etable.Headers); err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	return nil
}

// visible spells out the pause symbol so it survives CSV readers that trim fields
func visible(name string) string {
	if strings.TrimSpace(name) == "" {
		return "_"
	}
	return name
}

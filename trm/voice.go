// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"fmt"
	"strings"
)

// AgeGender selects one of the predefined voices
type AgeGender int32

const (
	// Neutral leaves the vowel table as given
	Neutral AgeGender = iota
	Male
	Female
	ChildLg
	ChildSm
	Baby
)

var ageGenderNames = map[AgeGender]string{
	Neutral: "",
	Male:    "male",
	Female:  "female",
	ChildLg: "child-large",
	ChildSm: "child-small",
	Baby:    "baby",
}

func (ag AgeGender) String() string {
	return ageGenderNames[ag]
}

// ParseAgeGender maps a voice name to its preset. The empty name is Neutral.
func ParseAgeGender(s string) (AgeGender, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for ag, nm := range ageGenderNames {
		if nm == s {
			return ag, nil
		}
	}
	return Neutral, fmt.Errorf("unknown voice %q", s)
}

// TractLength is the tract length of the voice in cm, 0 for Neutral
func (ag AgeGender) TractLength() float64 {
	switch ag {
	case Male:
		return 17.5
	case Female:
		return 15.0
	case ChildLg:
		return 12.5
	case ChildSm:
		return 10.0
	case Baby:
		return 7.5
	}
	return 0
}

// Scale is the factor applied to every vowel tract length for the voice.
// Shorter tracts resonate higher.
func (ag AgeGender) Scale() float64 {
	l := ag.TractLength()
	if l == 0 {
		return 1
	}
	return l / RefTractLength
}

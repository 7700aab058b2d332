// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package detect

// Unknown is the label of a class id outside the table
const Unknown = "Unknown"

// Labels are the 80 COCO object classes, indexed by class id
var Labels = [...]string{
	"Person", "Bicycle", "Car", "Motorcycle", "Airplane", "Bus", "Train",
	"Truck", "Boat", "Traffic light", "Fire hydrant", "Stop sign", "Parking meter",
	"Bench", "Bird", "Cat", "Dog", "Horse", "Sheep", "Cow", "Elephant", "Bear",
	"Zebra", "Giraffe", "Backpack", "Umbrella", "Handbag", "Tie", "Suitcase",
	"Frisbee", "Skis", "Snowboard", "Sports ball", "Kite", "Baseball bat",
	"Baseball glove", "Skateboard", "Surfboard", "Tennis racket", "Bottle",
	"Wine glass", "Cup", "Fork", "Knife", "Spoon", "Bowl", "Banana", "Apple",
	"Sandwich", "Orange", "Broccoli", "Carrot", "Hot dog", "Pizza", "Donut",
	"Cake", "Chair", "Couch", "Potted plant", "Bed", "Dining table", "Toilet",
	"TV", "Laptop", "Mouse", "Remote", "Keyboard", "Cell phone", "Microwave",
	"Oven", "Toaster", "Sink", "Refrigerator", "Book", "Clock", "Vase", "Scissors",
	"Teddy bear", "Hair drier", "Toothbrush",
}

// Label returns the class name of id, or Unknown
func Label(id int) string {
	if id < 0 || id >= len(Labels) {
		return Unknown
	}
	return Labels[id]
}

package main

// This file contains the display-name lookups for notes, percussion codes,
// and General MIDI instruments. These are presentation data only; the decoder
// itself never formats names.

import (
	"fmt"
)

// Short names for the percussion codes (note values 128-255) that have a
// conventional General MIDI meaning. Keys are the note value minus 128.
var percussionNames = map[uint8]string{
	27: "Laser", 28: "Whip", 29: "ScrPu", 30: "ScrPl", 31: "Stick",
	32: "MetCk", 34: "MetBl", 35: "BassD", 36: "KickD", 37: "SnaSt",
	38: "SnaD", 39: "Clap", 40: "ESnaD", 41: "FTom2", 42: "HHatC",
	43: "FTom1", 44: "HHatF", 45: "LTom", 46: "HHatO", 47: "LMTom",
	48: "HMTom", 49: "CrCym", 50: "HTom", 51: "RiCym", 52: "ChCym",
	53: "RiBel", 54: "Tamb", 55: "SpCym", 56: "CowBl", 57: "CrCym",
	58: "VSlap", 59: "RiCym", 60: "HBong", 61: "LBong", 62: "CongD",
	63: "Conga", 64: "Tumba", 65: "HTimb", 66: "LTimb", 67: "HAgog",
	68: "LAgog", 69: "Cabas", 70: "Marac", 71: "SWhis", 72: "LWhis",
	73: "SGuir", 74: "LGuir", 75: "Clave", 76: "HWood", 77: "LWood",
	78: "HCuic", 79: "LCuic", 80: "MTria", 81: "OTria", 82: "Shakr",
	83: "Sleig", 84: "BelTr", 85: "Casta", 86: "SirdD", 87: "Sirdu",
	91: "SnDmR", 92: "OcDrm", 93: "SmDrB",
}

// Returns the display name for a note value. Values 0-127 map to an octave
// and note name ("4C#"); values 128-255 are percussion codes.
func noteName(n uint8) string {
	if n < 128 {
		names := [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#",
			"A", "A#", "B"}
		octave := (int(n) / 12) - 1
		return fmt.Sprintf("%d%s", octave, names[n%12])
	}
	name, ok := percussionNames[n-128]
	if ok {
		return name
	}
	return fmt.Sprintf("P%03d", n-128)
}

// The General MIDI program names, used when printing the instrument
// histogram.
var instrumentNames = [128]string{
	"Acoustic Grand Piano", "Bright Acoustic Piano", "Electric Grand Piano",
	"Honky-tonk Piano", "Electric Piano 1", "Electric Piano 2",
	"Harpsichord", "Clavinet", "Celesta", "Glockenspiel", "Music Box",
	"Vibraphone", "Marimba", "Xylophone", "Tubular Bells", "Dulcimer",
	"Drawbar Organ", "Percussive Organ", "Rock Organ", "Church Organ",
	"Reed Organ", "Accordion", "Harmonica", "Tango Accordion",
	"Acoustic Guitar (nylon)", "Acoustic Guitar (steel)",
	"Electric Guitar (jazz)", "Electric Guitar (clean)",
	"Electric Guitar (muted)", "Overdriven Guitar", "Distortion Guitar",
	"Guitar Harmonics", "Acoustic Bass", "Electric Bass (finger)",
	"Electric Bass (pick)", "Fretless Bass", "Slap Bass 1", "Slap Bass 2",
	"Synth Bass 1", "Synth Bass 2", "Violin", "Viola", "Cello",
	"Contrabass", "Tremolo Strings", "Pizzicato Strings", "Orchestral Harp",
	"Timpani", "String Ensemble 1", "String Ensemble 2", "Synth Strings 1",
	"Synth Strings 2", "Choir Aahs", "Voice Oohs", "Synth Choir",
	"Orchestra Hit", "Trumpet", "Trombone", "Tuba", "Muted Trumpet",
	"French Horn", "Brass Section", "Synth Brass 1", "Synth Brass 2",
	"Soprano Sax", "Alto Sax", "Tenor Sax", "Baritone Sax", "Oboe",
	"English Horn", "Bassoon", "Clarinet", "Piccolo", "Flute", "Recorder",
	"Pan Flute", "Blown Bottle", "Shakuhachi", "Whistle", "Ocarina",
	"Lead 1 (square)", "Lead 2 (sawtooth)", "Lead 3 (calliope)",
	"Lead 4 (chiff)", "Lead 5 (charang)", "Lead 6 (voice)",
	"Lead 7 (fifths)", "Lead 8 (bass + lead)", "Pad 1 (new age)",
	"Pad 2 (warm)", "Pad 3 (polysynth)", "Pad 4 (choir)", "Pad 5 (bowed)",
	"Pad 6 (metallic)", "Pad 7 (halo)", "Pad 8 (sweep)", "FX 1 (rain)",
	"FX 2 (soundtrack)", "FX 3 (crystal)", "FX 4 (atmosphere)",
	"FX 5 (brightness)", "FX 6 (goblins)", "FX 7 (echoes)",
	"FX 8 (sci-fi)", "Sitar", "Banjo", "Shamisen", "Koto", "Kalimba",
	"Bagpipe", "Fiddle", "Shanai", "Tinkle Bell", "Agogo", "Steel Drums",
	"Woodblock", "Taiko Drum", "Melodic Tom", "Synth Drum",
	"Reverse Cymbal", "Guitar Fret Noise", "Breath Noise", "Seashore",
	"Bird Tweet", "Telephone Ring", "Helicopter", "Applause", "Gunshot",
}

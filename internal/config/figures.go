package config

import "slices"

const (
	milliToSeconds = 1.0 / 1000.0
)

var (
	powersOfTwo = []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024}
	mailboxes   = []float64{16384, 32768, 65536, 131072, 262144, 524288, 1048576, 2097152}
)

// BuiltinFigures returns the four figures of the paper's evaluation.
func BuiltinFigures() map[string]Figure {
	return map[string]Figure{
		"anon": {
			Kind:        KindLines,
			Output:      "plot_express_spectrum.pdf",
			Independent: "num_keys",
			Ticks:       slices.Clone(mailboxes),
			Scale:       milliToSeconds,
			XLabel:      "Number of mailboxes",
			YLabel:      "Server CPU time (seconds)",
			LogX:        true,
			Height:      1.75,
			Panels: []Panel{
				{
					Baseline:   Measure{Field: "server_express_ms", Label: "Express", Band: true},
					Variant:    Measure{Field: "server_express_pacl_ms", Label: "Express w/ PACL", Band: true},
					AnnotateAt: 1048576,
					Color:      0,
				},
				{
					Baseline:   Measure{Field: "server_spectrum_ms", Label: "Spectrum", Band: true},
					Variant:    Measure{Field: "server_spectrum_pacl_ms", Label: "Spectrum w/ PACL", Band: true},
					AnnotateAt: 1048576,
					Color:      1,
				},
			},
		},
		"fss": {
			Kind:        KindLines,
			Output:      "plot_fss.pdf",
			Independent: "num_keys",
			Category:    "num_subkeys",
			Ticks:       slices.Clone(powersOfTwo),
			XLabel:      "Number of evaluations",
			YLabel:      "Amortized CPU time (µs)",
			LogX:        true,
			Height:      1.75,
			Panels: []Panel{
				{
					Title:    "DPF-PACL",
					Baseline: Measure{Field: "equality_baseline_processing_us", Label: "FSS (baseline)"},
					Variant:  Measure{Field: "equality_dpf_pacl_processing_us", Label: "w/ PACL (l = {group})", Band: true},
				},
				{
					Title:    "DMPF-PACL",
					Baseline: Measure{Field: "range_baseline_processing_us", Label: "FSS (baseline)"},
					Variant:  Measure{Field: "range_dpf_pacl_processing_us", Label: "w/ PACL (l = {group})", Band: true},
				},
			},
		},
		"vfss": {
			Kind:        KindLines,
			Output:      "plot_vfss.pdf",
			Independent: "num_keys",
			Category:    "num_subkeys",
			Ticks:       slices.Clone(powersOfTwo),
			XLabel:      "Number of evaluations",
			YLabel:      "Amortized CPU time (µs)",
			LogX:        true,
			Height:      1.75,
			Panels: []Panel{
				{
					Title:     "VDPF-PACL",
					Baseline:  Measure{Field: "equality_baseline_ver_processing_us", Label: "VFSS (baseline)"},
					Variant:   Measure{Field: "equality_vdpf_pacl_processing_us", Label: "w/ PACL (l = {group})", Band: true},
					Reference: &Measure{Field: "group_exp_us", Label: "Exponentiation"},
					Inset:     &Inset{XMin: 490, XMax: 540, YMin: -10, YMax: 150},
				},
				{
					Title:     "VDMPF-PACL",
					Baseline:  Measure{Field: "range_baseline_ver_processing_us", Label: "VFSS (baseline)"},
					Variant:   Measure{Field: "range_vdpf_pacl_processing_us", Label: "w/ PACL (l = {group})", Band: true},
					Reference: &Measure{Field: "group_exp_us", Label: "Exponentiation"},
					Inset:     &Inset{XMin: 490, XMax: 540, YMin: -10, YMax: 150},
				},
			},
		},
		"pir": {
			Kind:        KindBars,
			Output:      "plot_pir_server_processing.pdf",
			Independent: "db_size",
			Category:    "item_size",
			Exclude:     []float64{16384, 32768, 65536, 131072, 262144},
			XLabel:      "Database size (number of items)",
			YLabel:      "Server CPU time (milliseconds)",
			Height:      2.75 / 1.5,
			Panels: []Panel{
				{
					Baseline:   Measure{Field: "server_pir_processing_ms", Label: "PIR"},
					Variant:    Measure{Field: "server_pir_pacl_processing_ms", Label: "PIR w/ VDPF-PACL"},
					GroupLabel: "{group} B",
				},
			},
		},
	}
}

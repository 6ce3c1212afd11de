package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     SlideName
	}{
		{
			name:     "reference svs",
			filename: "kidney_00040_00132_001227_002215_01_01_SOH_12710003.svs",
			want: SlideName{
				Specimen: "kidney", Participant: "00040", BiopsyID: "00132",
				SlideID: "001227", ImageID: "002215", BlockNumber: "01",
				SlideNumber: "01", Department: "SOH", Stain: "12710003",
			},
		},
		{
			name:     "ndpi",
			filename: "liver_00007_00001_000010_000020_02_03_HUS_HE.ndpi",
			want: SlideName{
				Specimen: "liver", Participant: "00007", BiopsyID: "00001",
				SlideID: "000010", ImageID: "000020", BlockNumber: "02",
				SlideNumber: "03", Department: "HUS", Stain: "HE",
			},
		},
		{
			name:     "uppercase extension",
			filename: "kidney_1_2_3_4_5_6_SOH_7.SVS",
			want: SlideName{
				Specimen: "kidney", Participant: "1", BiopsyID: "2", SlideID: "3",
				ImageID: "4", BlockNumber: "5", SlideNumber: "6", Department: "SOH", Stain: "7",
			},
		},
		{
			name:     "full path uses base name only",
			filename: "/data/run_2024/kidney_00040_00132_001227_002215_01_01_SOH_12710003.svs",
			want: SlideName{
				Specimen: "kidney", Participant: "00040", BiopsyID: "00132",
				SlideID: "001227", ImageID: "002215", BlockNumber: "01",
				SlideNumber: "01", Department: "SOH", Stain: "12710003",
			},
		},
		{
			name:     "whitespace trimmed per field",
			filename: " kidney_ 00040 _00132_001227_002215 _01_01_SOH_ 12710003.svs",
			want: SlideName{
				Specimen: "kidney", Participant: "00040", BiopsyID: "00132",
				SlideID: "001227", ImageID: "002215", BlockNumber: "01",
				SlideNumber: "01", Department: "SOH", Stain: "12710003",
			},
		},
		{
			name:     "empty fields allowed",
			filename: "kidney_00040__001227__01_01_SOH_12710003.svs",
			want: SlideName{
				Specimen: "kidney", Participant: "00040", BiopsyID: "",
				SlideID: "001227", ImageID: "", BlockNumber: "01",
				SlideNumber: "01", Department: "SOH", Stain: "12710003",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseFilename(tc.filename)
			require.True(t, ok, "ParseFilename(%q) reported no match", tc.filename)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFilename_NoMatch(t *testing.T) {
	cases := []string{
		"",
		"kidney.svs",
		"kidney_00040_00132_001227_002215_01_01_SOH.svs",              // eight fields
		"kidney_00040_00132_001227_002215_01_01_SOH_12710003_X.svs",   // ten fields
		"kidney_00040_00132_001227_002215_01_01_SOH_12710003.tif",     // wrong extension
		"kidney_00040_00132_001227_002215_01_01_SOH_12710003",         // no extension
		"kidney_00040_00132_001227_002215_01_01_SOH_12710003.svs.bak", // trailing suffix
		"kidney_00040_00132_001227_002215_01_01_SOH_127.10003.svs",    // dot in stain
	}
	for _, name := range cases {
		got, ok := ParseFilename(name)
		assert.False(t, ok, "ParseFilename(%q) = %+v, want no match", name, got)
		assert.Equal(t, SlideName{}, got)
	}
}

// Every generated nine-field name round-trips into exactly the fields it was
// built from.
func TestParseFilename_FieldsInOrder(t *testing.T) {
	fields := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	for _, ext := range []string{".svs", ".ndpi", ".Svs", ".NDPI"} {
		name := strings.Join(fields, "_") + ext
		got, ok := ParseFilename(name)
		require.True(t, ok, "ParseFilename(%q) reported no match", name)
		gotFields := []string{got.Specimen, got.Participant, got.BiopsyID, got.SlideID,
			got.ImageID, got.BlockNumber, got.SlideNumber, got.Department, got.Stain}
		assert.Equal(t, fields, gotFields, name)
	}
}

func TestIsSlideFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"a.svs", true},
		{"a.SVS", true},
		{"dir/a.ndpi", true},
		{"a.NdPi", true},
		{"a.tif", false},
		{"a.svs.txt", false},
		{"svs", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsSlideFile(tc.path), "IsSlideFile(%q)", tc.path)
	}
}

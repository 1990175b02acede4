package semver

import "testing"

func TestNewVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    [3]int
		wantErr bool
	}{
		{name: "release version", version: "2.0.3", want: [3]int{2, 0, 3}},
		{name: "leading v stripped", version: "v2.0.3", want: [3]int{2, 0, 3}},
		{name: "surrounding spaces", version: " 1.10.0 ", want: [3]int{1, 10, 0}},
		{name: "zero version", version: "0.0.0", want: [3]int{0, 0, 0}},
		{name: "two components", version: "2.0", wantErr: true},
		{name: "four components", version: "2.0.3.1", wantErr: true},
		{name: "pre-release suffix", version: "2.0.3-rc1", wantErr: true},
		{name: "non numeric major", version: "a.0.3", wantErr: true},
		{name: "negative component", version: "1.-2.3", wantErr: true},
		{name: "empty component", version: "1..3", wantErr: true},
		{name: "empty", version: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if [3]int{got.Major(), got.Minor(), got.Patch()} != tt.want {
				t.Errorf("NewVersion(%q) = %s, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestParseLoose(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "24.0", want: "24.0.0"},
		{input: "23.3.1", want: "23.3.1"},
		{input: "25", want: "25.0.0"},
		{input: "25.1.dev0", want: "25.1.0"},
		{input: "23.3b1", want: "23.3.0"},
		{input: "v1.2.3", want: "1.2.3"},
		{input: "", wantErr: true},
		{input: "dev", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLoose(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLoose(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseLoose(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"2.0.0", "1.9.9", 1},
		{"1.10.0", "1.9.0", 1},
		{"1.3.10", "1.3.9", 1},
		{"2.0.3", "2.0.3", 0},
		{"2.0.2", "2.0.3", -1},
		{"1.9.9", "2.0.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.v1+"_"+tt.v2, func(t *testing.T) {
			v1, err := NewVersion(tt.v1)
			if err != nil {
				t.Fatal(err)
			}
			v2, err := NewVersion(tt.v2)
			if err != nil {
				t.Fatal(err)
			}

			if got := v1.Compare(v2); got != tt.want {
				t.Errorf("%s.Compare(%s) = %d, want %d", tt.v1, tt.v2, got, tt.want)
			}
			if v1.GreaterThan(v2) != (tt.want > 0) {
				t.Errorf("%s.GreaterThan(%s) disagrees with Compare", tt.v1, tt.v2)
			}
			if v1.LessThan(v2) != (tt.want < 0) {
				t.Errorf("%s.LessThan(%s) disagrees with Compare", tt.v1, tt.v2)
			}
			if v1.Equal(v2) != (tt.want == 0) {
				t.Errorf("%s.Equal(%s) disagrees with Compare", tt.v1, tt.v2)
			}
		})
	}
}

func TestPipThreshold(t *testing.T) {
	threshold, _ := NewVersion("23.3.0")
	for input, want := range map[string]bool{"23.2": false, "23.3": true, "24.0": true, "9.0.1": false} {
		v, err := ParseLoose(input)
		if err != nil {
			t.Fatal(err)
		}
		if v.AtLeast(threshold) != want {
			t.Errorf("%s.AtLeast(23.3.0) = %v, want %v", input, !want, want)
		}
	}
}

func TestVersion_Tag(t *testing.T) {
	v, err := NewVersion("v2.0.3")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "2.0.3" {
		t.Errorf("String() = %s, want 2.0.3", v.String())
	}
	if v.Tag() != "v2.0.3" {
		t.Errorf("Tag() = %s, want v2.0.3", v.Tag())
	}
}

package manifest

import (
	"testing"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foo_Bar", "foo-bar"},
		{"foo-bar", "foo-bar"},
		{"foo.bar", "foo-bar"},
		{"FOO..__--bar", "foo-bar"},
		{"ch_util", "ch-util"},
		{"chimedb-data_index", "chimedb-data-index"},
		{"zarr", "zarr"},
	}

	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalName_Idempotent(t *testing.T) {
	for _, name := range []string{"Foo_Bar", "chimedb.data_index", "x"} {
		once := CanonicalName(name)
		if twice := CanonicalName(once); twice != once {
			t.Errorf("CanonicalName(%q) not idempotent: %q != %q", name, twice, once)
		}
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		spec string
		want Requirement
	}{
		{"caput", Requirement{Name: "caput"}},
		{"  flask  ", Requirement{Name: "flask"}},
		{"x>=1", Requirement{Name: "x", Constraint: ">=1"}},
		{"x >= 1, < 2", Requirement{Name: "x", Constraint: "<2,>=1"}},
		{"numpy (==1.24.0)", Requirement{Name: "numpy", Constraint: "==1.24.0"}},
		{"draco[lint]", Requirement{Name: "draco", Extras: []string{"lint"}}},
		{"chimedb[test, dev]>=23.2", Requirement{
			Name: "chimedb", Extras: []string{"dev", "test"}, Constraint: ">=23.2",
		}},
		{"pkg[b,a,b]", Requirement{Name: "pkg", Extras: []string{"a", "b"}}},
		{"pkg @ https://example.org/pkg.tar.gz", Requirement{
			Name: "pkg", URL: "https://example.org/pkg.tar.gz",
		}},
		{`tomli; python_version < "3.11"`, Requirement{
			Name: "tomli", Marker: `python_version < "3.11"`,
		}},
		{"h5py==3.*", Requirement{Name: "h5py", Constraint: "==3.*"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if got.Constraint != tt.want.Constraint {
				t.Errorf("Constraint = %q, want %q", got.Constraint, tt.want.Constraint)
			}
			if got.URL != tt.want.URL {
				t.Errorf("URL = %q, want %q", got.URL, tt.want.URL)
			}
			if got.Marker != tt.want.Marker {
				t.Errorf("Marker = %q, want %q", got.Marker, tt.want.Marker)
			}
			if len(got.Extras) != len(tt.want.Extras) {
				t.Fatalf("Extras = %v, want %v", got.Extras, tt.want.Extras)
			}
			for i := range got.Extras {
				if got.Extras[i] != tt.want.Extras[i] {
					t.Errorf("Extras = %v, want %v", got.Extras, tt.want.Extras)
					break
				}
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	specs := []string{
		"",
		"   ",
		"not a valid spec!!",
		"-leading-dash",
		"[extras]",
		">=1",
		"name[unclosed",
		"name[]",
		"name==",
		"name @ ",
		"name; ",
		"name >> 2",
	}

	for _, spec := range specs {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", spec)
		}
	}
}

func TestString_Normalized(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"caput", "caput"},
		{"x >= 1", "x>=1"},
		{"x >= 1, < 2", "x<2,>=1"},
		{"chimedb[test, dev] >= 23.2", "chimedb[dev,test]>=23.2"},
		{"pkg @ https://example.org/pkg.tar.gz", "pkg@ https://example.org/pkg.tar.gz"},
		{`tomli ; python_version < "3.11"`, `tomli; python_version < "3.11"`},
	}

	for _, tt := range tests {
		r, err := Parse(tt.spec)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.spec, err)
		}
		if got := r.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestString_StableUnderReparse(t *testing.T) {
	for _, spec := range []string{"x<2,>=1", "chimedb[dev,test]>=23.2", "caput"} {
		r, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", spec, err)
		}
		if got := r.String(); got != spec {
			t.Errorf("normalized form %q reparsed to %q", spec, got)
		}
	}
}

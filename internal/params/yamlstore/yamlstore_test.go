package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"svcparams/internal/params"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, path
}

func TestNewEmpty(t *testing.T) {
	s, path := newTestStore(t)
	if n := s.Params().Len(); n != 0 {
		t.Errorf("empty store has %d entries, want 0", n)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("New should not create the file, stat err = %v", err)
	}
}

func TestNewEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n := s.Params().Len(); n != 0 {
		t.Errorf("empty file has %d entries, want 0", n)
	}
}

func TestNewLoadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	content := `default:
  locale: en-GB
groups:
  threeDS2DirectoryServerInformation:
    directoryServerId: F013371337
    publicKey: PK
  default:
    clash: "no"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	checks := []struct {
		key   string
		group params.Group
		want  string
	}{
		{"locale", params.DefaultGroup, "en-GB"},
		{params.KeyDirectoryServerID, params.ServiceGroup, "F013371337"},
		{params.KeyPublicKey, params.ServiceGroup, "PK"},
		{"clash", "default", "no"},
	}
	for _, c := range checks {
		if v, ok := s.Get(c.key, c.group); !ok || v != c.want {
			t.Errorf("Get(%q, %q) = %q, %v; want %q, true", c.key, c.group, v, ok, c.want)
		}
	}
	if _, ok := s.Get("clash", params.DefaultGroup); ok {
		t.Error("group named \"default\" leaked into the default group")
	}
}

func TestNewMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("groups: [not, a, map]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path); err == nil {
		t.Fatal("New on malformed file should fail")
	}
}

func TestSetAndGet(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Set("publicKey", params.Some("PK"), params.ServiceGroup); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := s.Get("publicKey", params.ServiceGroup); !ok || v != "PK" {
		t.Errorf("Get = %q, %v; want %q, true", v, ok, "PK")
	}
}

func TestSetNoneRemoves(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.Set("k", params.Some("v"), "G"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", params.None(), "G"); err != nil {
		t.Fatal(err)
	}

	reloaded, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reloaded.Get("k", "G"); ok {
		t.Error("key set to None should not be persisted")
	}
}

func TestRemoveNonexistent(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Remove("nonexistent", "nowhere"); err != nil {
		t.Errorf("Remove(nonexistent) = %v, want nil", err)
	}
}

func TestPersistence(t *testing.T) {
	s1, path := newTestStore(t)

	if err := s1.Set("locale", params.Some("en-GB"), params.DefaultGroup); err != nil {
		t.Fatal(err)
	}
	if err := s1.Set("publicKey", params.Some("PK"), params.ServiceGroup); err != nil {
		t.Fatal(err)
	}

	s2, err := New(path)
	if err != nil {
		t.Fatalf("New (reload): %v", err)
	}
	if !reflect.DeepEqual(s1.Params().All(), s2.Params().All()) {
		t.Errorf("reloaded = %v, want %v", s2.Params().All(), s1.Params().All())
	}
}

func TestFileFormat(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.Set("b", params.Some("2"), params.DefaultGroup); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("a", params.Some("1"), params.DefaultGroup); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", params.Some("v"), "svc"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "default:\n    a: \"1\"\n    b: \"2\"\ngroups:\n    svc:\n        k: v\n"
	if string(raw) != want {
		t.Errorf("file content:\n%s\nwant:\n%s", raw, want)
	}
}

func TestImport(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.Set("stale", params.Some("x"), params.ServiceGroup); err != nil {
		t.Fatal(err)
	}

	source := map[string]string{
		"threeds2.directoryServerId": "D1",
		"threeds2.publicKey":         "PK",
		"other.x":                    "Y",
	}
	n, err := s.Import(source, params.AdditionalDataPrefix, params.ServiceGroup, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("Import copied %d entries, want 2", n)
	}
	if _, ok := s.Get("stale", params.ServiceGroup); !ok {
		t.Error("Import without replace dropped an existing key")
	}

	n, err = s.Import(source, params.AdditionalDataPrefix, params.ServiceGroup, true)
	if err != nil {
		t.Fatalf("Import (replace): %v", err)
	}
	if n != 2 {
		t.Errorf("Import (replace) copied %d entries, want 2", n)
	}

	reloaded, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	want := map[params.Group]map[string]string{
		params.ServiceGroup: {"directoryServerId": "D1", "publicKey": "PK"},
	}
	if got := reloaded.Params().All(); !reflect.DeepEqual(got, want) {
		t.Errorf("after replace import = %v, want %v", got, want)
	}
}

func TestParamsReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set("k", params.Some("v"), params.DefaultGroup); err != nil {
		t.Fatal(err)
	}

	p := s.Params()
	p.Set("k", params.Some("MUTATED"))

	if v, _ := s.Get("k", params.DefaultGroup); v != "v" {
		t.Errorf("mutation of Params() result affected store: Get(k) = %q", v)
	}
}

func TestUpdatePicksUpOtherWriters(t *testing.T) {
	s1, path := newTestStore(t)
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s1.Set("a", params.Some("1"), params.DefaultGroup); err != nil {
		t.Fatal(err)
	}
	if err := s2.Set("b", params.Some("2"), params.DefaultGroup); err != nil {
		t.Fatal(err)
	}

	if v, ok := s2.Get("a", params.DefaultGroup); !ok || v != "1" {
		t.Errorf("s2 lost s1's write: Get(a) = %q, %v", v, ok)
	}
}

func TestConcurrentWrites(t *testing.T) {
	_, path := newTestStore(t)

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := New(path)
			if err != nil {
				errs <- err
				return
			}
			errs <- s.Set(fmt.Sprintf("key%d", i), params.Some("v"), params.ServiceGroup)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Set: %v", err)
		}
	}

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s.Params().Keys(params.ServiceGroup)); got != n {
		t.Errorf("after concurrent writes: %d keys, want %d", got, n)
	}
}

func TestMarshalEmpty(t *testing.T) {
	raw, err := Marshal(params.New())
	if err != nil {
		t.Fatal(err)
	}
	p, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal(%q): %v", raw, err)
	}
	if p.Len() != 0 {
		t.Errorf("round trip of empty params has %d entries", p.Len())
	}
	if strings.Contains(string(raw), "groups") {
		t.Errorf("empty params should omit groups, got %q", raw)
	}
}

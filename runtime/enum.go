package runtime

import (
	"sync"

	"github.com/kushdb/kushdb-go/catalog"
)

// EnumManager is the process-wide string<->int32 dictionary registry
// keyed by dictionary id (spec.md §6 "Enum dictionary file"). Each
// dictionary's on-disk layout is identical to a TEXT column's, so it
// is opened through the same ColumnData path.
type EnumManager struct {
	mu    sync.Mutex
	dicts map[int]*enumDict
}

type enumDict struct {
	data     *ColumnData
	valueIdx map[string]int32 // string -> dictionary id (position)
}

func NewEnumManager() *EnumManager {
	return &EnumManager{dicts: make(map[int]*enumDict)}
}

// Register opens the dictionary file for dictID at path, building the
// reverse string->id index used by enum-literal resolution
// (spec.md §4.2 BinaryArith EQ rewrite).
func (em *EnumManager) Register(dictID int, path string) error {
	em.mu.Lock()
	defer em.mu.Unlock()
	if _, ok := em.dicts[dictID]; ok {
		return nil
	}
	data, err := Open(path, catalog.TEXT)
	if err != nil {
		return err
	}
	d := &enumDict{data: data, valueIdx: make(map[string]int32, data.Size())}
	for i := uint32(0); i < data.Size(); i++ {
		d.valueIdx[data.GetText(i)] = int32(i)
	}
	em.dicts[dictID] = d
	return nil
}

// GetKey returns the string for dictionary id and value index i
// (the original's Enum::GetKey primitive, spec.md §6).
func (em *EnumManager) GetKey(dictID int, i int32) (string, bool) {
	em.mu.Lock()
	d, ok := em.dicts[dictID]
	em.mu.Unlock()
	if !ok || i < 0 || uint32(i) >= d.data.Size() {
		return "", false
	}
	return d.data.GetText(uint32(i)), true
}

// GetValue resolves a literal string to its dictionary id within
// dictID, or ok=false if the string is not present in the dictionary
// (spec.md §4.2: "unresolvable -> always-false without contacting
// data").
func (em *EnumManager) GetValue(dictID int, s string) (int32, bool) {
	em.mu.Lock()
	d, ok := em.dicts[dictID]
	em.mu.Unlock()
	if !ok {
		return 0, false
	}
	id, ok := d.valueIdx[s]
	return id, ok
}

package catalog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// manifestColumn mirrors Column but with YAML-friendly field names;
// IndexPath/NullPath are optional.
type manifestColumn struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	EnumID    int    `yaml:"enum_id,omitempty"`
	Nullable  bool   `yaml:"nullable,omitempty"`
	DataPath  string `yaml:"data_path"`
	NullPath  string `yaml:"null_path,omitempty"`
	IndexPath string `yaml:"index_path,omitempty"`
}

type manifestTable struct {
	Name    string           `yaml:"name"`
	Columns []manifestColumn `yaml:"columns"`
}

type manifest struct {
	Tables []manifestTable `yaml:"tables"`
}

var kindByName = map[string]Kind{
	"SMALLINT": SMALLINT,
	"INT":      INT,
	"BIGINT":   BIGINT,
	"REAL":     REAL,
	"DATE":     DATE,
	"TEXT":     TEXT,
	"BOOLEAN":  BOOLEAN,
	"ENUM":     ENUM,
}

// LoadDatabase reads a YAML table manifest describing which column,
// null-bitmap, and index files back each table, and builds a Database
// from it. This is the one loader the core owns: the spec scopes
// TPC-H/JCC-H/JOB data loaders out (spec.md §1), but something has to
// describe the demo/test tables without a SQL DDL parser, which is
// also out of scope.
func LoadDatabase(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog manifest %s", path)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing catalog manifest %s", path)
	}
	db := NewDatabase()
	for _, mt := range m.Tables {
		tbl := NewTable(mt.Name)
		for _, mc := range mt.Columns {
			kind, ok := kindByName[mc.Type]
			if !ok {
				return nil, errors.Errorf("catalog manifest %s: table %s column %s: unknown type %q", path, mt.Name, mc.Name, mc.Type)
			}
			typ := Type{Kind: kind, EnumID: mc.EnumID, Nullable: mc.Nullable}
			tbl.AddColumn(Column{
				Name:      mc.Name,
				Type:      typ,
				DataPath:  mc.DataPath,
				NullPath:  mc.NullPath,
				IndexPath: mc.IndexPath,
			})
		}
		db.AddTable(tbl)
	}
	return db, nil
}

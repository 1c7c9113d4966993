package lab

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StudentRecord is a student as written in a roster file or the database.
type StudentRecord struct {
	UID     string `yaml:"uid"`
	Name    string `yaml:"name"`
	Fine    int    `yaml:"fine"`
	Borrows int    `yaml:"borrows"`
}

// AssetRecord is an asset as written in a roster file or the database.
type AssetRecord struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Available bool   `yaml:"available"`
	Security  int    `yaml:"security"`
}

// RosterFile is the setup data for a checkout service.
type RosterFile struct {
	Students []StudentRecord `yaml:"students"`
	Assets   []AssetRecord   `yaml:"assets"`
}

// RequestRecord is one entry of a batch file.
type RequestRecord struct {
	UID     string `yaml:"uid"`
	AssetID string `yaml:"asset"`
	Hours   int    `yaml:"hours"`
}

// BatchFile is an ordered list of checkout requests.
type BatchFile struct {
	Requests []RequestRecord `yaml:"requests"`
}

func LoadRosterFile(path string) (RosterFile, error) {
	var rf RosterFile
	if err := readYAML(path, &rf); err != nil {
		return rf, fmt.Errorf("load roster: %w", err)
	}
	for _, a := range rf.Assets {
		if a.Security < 1 || a.Security > RestrictedSecurityLevel {
			return rf, fmt.Errorf("load roster: asset %s: security level %d out of range", a.ID, a.Security)
		}
	}
	return rf, nil
}

func LoadBatchFile(path string) (BatchFile, error) {
	var bf BatchFile
	if err := readYAML(path, &bf); err != nil {
		return bf, fmt.Errorf("load batch: %w", err)
	}
	return bf, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// Build creates fresh in-memory entities from the records.
func (rf RosterFile) Build() (*Roster, *AssetStore) {
	students := make([]*Student, 0, len(rf.Students))
	for _, r := range rf.Students {
		students = append(students, &Student{
			UID:                r.UID,
			Name:               r.Name,
			FineAmount:         r.Fine,
			CurrentBorrowCount: r.Borrows,
		})
	}
	assets := make([]*Asset, 0, len(rf.Assets))
	for _, r := range rf.Assets {
		assets = append(assets, &Asset{
			AssetID:       r.ID,
			AssetName:     r.Name,
			Available:     r.Available,
			SecurityLevel: r.Security,
		})
	}
	return NewRoster(students...), NewAssetStore(assets...)
}

// DemoRoster is the sample lab used by the demo command.
func DemoRoster() RosterFile {
	return RosterFile{
		Students: []StudentRecord{
			{UID: "KRG20281", Name: "Prateek", Fine: 0, Borrows: 0},
			{UID: "STD10002", Name: "Aman", Fine: 200, Borrows: 1},
			{UID: "STD10003", Name: "Riya", Fine: 0, Borrows: 2},
		},
		Assets: []AssetRecord{
			{ID: "LAB-101", Name: "HDMI Cable", Available: true, Security: 1},
			{ID: "LAB-202", Name: "Router", Available: true, Security: 3},
			{ID: "LAB-303", Name: "Mouse", Available: false, Security: 1},
		},
	}
}

// DemoBatch is the sample request sequence used by the demo command.
func DemoBatch() BatchFile {
	return BatchFile{Requests: []RequestRecord{
		{UID: "KRG20281", AssetID: "LAB-101", Hours: 5},
		{UID: "KRG20281", AssetID: "LAB-999", Hours: 2},
		{UID: "STD10002", AssetID: "LAB-202", Hours: 2},
	}}
}

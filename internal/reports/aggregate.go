package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/db/models"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
)

// Bucket names the five output categories of a cut-list.
type Bucket string

const (
	BucketFormatki  Bucket = "formatki"
	BucketFronty    Bucket = "fronty"
	BucketWitryny   Bucket = "witryny"
	BucketHDF       Bucket = "hdf"
	BucketAkcesoria Bucket = "akcesoria"
)

// Row is one aggregated cut-list line. Quantity is already expanded by the
// cabinet quantity.
type Row struct {
	Ordinal  string
	PartName string
	HeightMM int
	WidthMM  int
	Quantity int
	Color    string
	Wrapping string
	Notes    string
}

// AccessoryRow is one aggregated hardware line.
type AccessoryRow struct {
	Ordinal  string
	Name     string
	Quantity int
}

// CutList groups a project's snapshot rows into output categories.
type CutList struct {
	ProjectID   uuid.UUID
	ProjectName string
	Formatki    []Row
	Fronty      []Row
	Witryny     []Row
	HDF         []Row
	Akcesoria   []AccessoryRow
}

type projectLoader interface {
	FindProjectWithSnapshots(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// Aggregator produces cut-lists from frozen project snapshots.
type Aggregator struct {
	projects projectLoader
}

// NewAggregator builds an aggregator over the given project loader.
func NewAggregator(projects projectLoader) (*Aggregator, error) {
	if projects == nil {
		return nil, fmt.Errorf("project loader required")
	}
	return &Aggregator{projects: projects}, nil
}

// Aggregate walks every cabinet of the project and buckets its snapshot
// rows. Returns nil, nil when the project does not exist.
func (a *Aggregator) Aggregate(ctx context.Context, projectID uuid.UUID) (*CutList, error) {
	project, err := a.projects.FindProjectWithSnapshots(ctx, projectID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading project snapshots")
	}
	return BuildCutList(project), nil
}

// BuildCutList buckets an already-loaded project snapshot tree.
func BuildCutList(project *models.Project) *CutList {
	cutlist := &CutList{ProjectID: project.ID, ProjectName: project.Name}

	for _, cabinet := range project.Cabinets {
		ordinal := GetCircledNumber(cabinet.SequenceNumber)

		for _, part := range cabinet.Parts {
			bucket := classifyPart(part.Material, part.PartName)
			row := Row{
				Ordinal:  ordinal,
				PartName: part.PartName,
				HeightMM: part.HeightMM,
				WidthMM:  part.WidthMM,
				Quantity: part.Pieces * cabinet.Quantity,
				Color:    resolveColor(bucket, cabinet),
				Wrapping: deref(part.Wrapping),
				Notes:    deref(part.Comments),
			}
			switch bucket {
			case BucketFronty:
				cutlist.Fronty = append(cutlist.Fronty, row)
			case BucketWitryny:
				cutlist.Witryny = append(cutlist.Witryny, row)
			case BucketHDF:
				cutlist.HDF = append(cutlist.HDF, row)
			default:
				cutlist.Formatki = append(cutlist.Formatki, row)
			}
		}

		for _, accessory := range cabinet.Accessories {
			cutlist.Akcesoria = append(cutlist.Akcesoria, AccessoryRow{
				Ordinal:  ordinal,
				Name:     accessory.Name,
				Quantity: accessory.Count * cabinet.Quantity,
			})
		}
	}
	return cutlist
}

// classifyPart picks the bucket for a snapshot part. The primary path is a
// case-insensitive prefix match on the stored material; when material is
// empty, a name-substring heuristic takes over. Historical rows rely on the
// fallback, so both paths are kept as-is.
func classifyPart(material, partName string) Bucket {
	if material != "" {
		upper := strings.ToUpper(material)
		switch {
		case strings.HasPrefix(upper, "WITRYNA"):
			return BucketWitryny
		case strings.HasPrefix(upper, "FRONT"):
			return BucketFronty
		case strings.HasPrefix(upper, "HDF"):
			return BucketHDF
		default:
			return BucketFormatki
		}
	}

	lower := strings.ToLower(partName)
	switch {
	case strings.Contains(lower, "witryna"), strings.Contains(lower, "szyba"):
		return BucketWitryny
	case strings.Contains(lower, "front"):
		return BucketFronty
	case strings.Contains(lower, "hdf"), strings.Contains(lower, "plecy"):
		return BucketHDF
	default:
		return BucketFormatki
	}
}

// resolveColor picks the cabinet color a bucket is cut from: front color for
// door/display parts, body color for everything else.
func resolveColor(bucket Bucket, cabinet models.ProjectCabinet) string {
	if bucket == BucketFronty || bucket == BucketWitryny {
		return cabinet.FrontColor
	}
	return cabinet.BodyColor
}

// GetCircledNumber renders a sequence number as its circled glyph: 1 is "①"
// through 20 being "⑳"; larger ordinals fall back to "(n)".
func GetCircledNumber(n int) string {
	if n >= 1 && n <= 20 {
		return string(rune(0x2460 + n - 1))
	}
	return fmt.Sprintf("(%d)", n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

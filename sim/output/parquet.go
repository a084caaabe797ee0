// Package output writes simulation results to disk: the per-seeker outcome
// table and the per-run aggregates as parquet, and the distribution summary
// as JSON.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/sirupsen/logrus"

	"github.com/jobmatch-sim/jobmatch-sim/sim"
)

// Default file names inside the output directory.
const (
	DefaultDir          = "data/generated"
	OutcomesFileName    = "simulated_outcomes.parquet"
	RunAggregatesFile   = "run_aggregates.parquet"
	SummaryJSONFileName = "summary.json"
)

// Fixed outcome-table columns. Skill columns sit between ColTreated and
// ColRecommendedJob, one per skill, named after the skill.
const (
	ColUserID         = "user_id"
	ColTreated        = "treated"
	ColRecommendedJob = "recommended_job"
	ColAppliedJob     = "applied_job"
	ColMatchScore     = "match_score"
	ColRetained       = "retained"
	ColWage           = "wage"
	ColSkillTotal     = "skill_total"
	ColSkillGroup     = "skill_group"
)

// OutcomeSchema returns the arrow schema of the outcome table.
// recommended_job is the only nullable column; null means no recommendation.
func OutcomeSchema(skills []string) *arrow.Schema {
	fields := []arrow.Field{
		{Name: ColUserID, Type: arrow.PrimitiveTypes.Int64},
		{Name: ColTreated, Type: arrow.FixedWidthTypes.Boolean},
	}
	for _, s := range skills {
		fields = append(fields, arrow.Field{Name: s, Type: arrow.PrimitiveTypes.Float64})
	}
	fields = append(fields,
		arrow.Field{Name: ColRecommendedJob, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		arrow.Field{Name: ColAppliedJob, Type: arrow.PrimitiveTypes.Int64},
		arrow.Field{Name: ColMatchScore, Type: arrow.PrimitiveTypes.Float64},
		arrow.Field{Name: ColRetained, Type: arrow.FixedWidthTypes.Boolean},
		arrow.Field{Name: ColWage, Type: arrow.PrimitiveTypes.Float64},
		arrow.Field{Name: ColSkillTotal, Type: arrow.PrimitiveTypes.Float64},
		arrow.Field{Name: ColSkillGroup, Type: arrow.BinaryTypes.String},
	)
	return arrow.NewSchema(fields, nil)
}

// RunAggregateSchema returns the arrow schema of the per-run results dump.
var RunAggregateSchema = arrow.NewSchema([]arrow.Field{
	{Name: "run", Type: arrow.PrimitiveTypes.Int64},
	{Name: "group", Type: arrow.BinaryTypes.String},
	{Name: "count", Type: arrow.PrimitiveTypes.Int64},
	{Name: ColMatchScore, Type: arrow.PrimitiveTypes.Float64},
	{Name: ColRetained, Type: arrow.PrimitiveTypes.Float64},
	{Name: ColWage, Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteOutcomesParquet writes one row per seeker to path, creating parent
// directories as needed.
func WriteOutcomesParquet(path string, skills []string, outcomes []sim.Outcome) error {
	schema := OutcomeSchema(skills)
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	base := 2 + len(skills)
	for i, o := range outcomes {
		if len(o.Seeker.Skills) != len(skills) {
			return fmt.Errorf("outcome %d: %d skill values for %d skill columns", i, len(o.Seeker.Skills), len(skills))
		}
		b.Field(0).(*array.Int64Builder).Append(int64(o.Seeker.ID))
		b.Field(1).(*array.BooleanBuilder).Append(o.Seeker.Treated)
		for k, v := range o.Seeker.Skills {
			b.Field(2 + k).(*array.Float64Builder).Append(v)
		}
		rec := b.Field(base).(*array.Int64Builder)
		if id, ok := o.Recommended.Get(); ok {
			rec.Append(int64(id))
		} else {
			rec.AppendNull()
		}
		b.Field(base + 1).(*array.Int64Builder).Append(int64(o.AppliedJob))
		b.Field(base + 2).(*array.Float64Builder).Append(o.MatchScore)
		b.Field(base + 3).(*array.BooleanBuilder).Append(o.Retained)
		b.Field(base + 4).(*array.Float64Builder).Append(o.Wage)
		b.Field(base + 5).(*array.Float64Builder).Append(o.Seeker.SkillTotal())
		b.Field(base + 6).(*array.StringBuilder).Append(string(o.Seeker.SkillGroup()))
	}

	record := b.NewRecord()
	defer record.Release()
	if err := writeParquet(path, schema, record); err != nil {
		return err
	}
	logrus.Debugf("wrote %d outcome rows to %s", record.NumRows(), path)
	return nil
}

// WriteRunsParquet writes every per-run group aggregate to path.
// Empty groups keep their NaN means.
func WriteRunsParquet(path string, runs []sim.RunAggregate) error {
	b := array.NewRecordBuilder(memory.DefaultAllocator, RunAggregateSchema)
	defer b.Release()

	for _, r := range runs {
		b.Field(0).(*array.Int64Builder).Append(int64(r.Run))
		b.Field(1).(*array.StringBuilder).Append(string(r.Group))
		b.Field(2).(*array.Int64Builder).Append(int64(r.Count))
		b.Field(3).(*array.Float64Builder).Append(r.MatchScore)
		b.Field(4).(*array.Float64Builder).Append(r.Retained)
		b.Field(5).(*array.Float64Builder).Append(r.Wage)
	}

	record := b.NewRecord()
	defer record.Release()
	if err := writeParquet(path, RunAggregateSchema, record); err != nil {
		return err
	}
	logrus.Debugf("wrote %d run aggregate rows to %s", record.NumRows(), path)
	return nil
}

func writeParquet(path string, schema *arrow.Schema, record arrow.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	w, err := pqarrow.NewFileWriter(schema, f, props, pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		return fmt.Errorf("parquet writer %s: %w", path, err)
	}
	if err := w.Write(record); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// OutcomeRow is one decoded row of the outcome table.
type OutcomeRow struct {
	UserID         int64
	Treated        bool
	Skills         []float64
	RecommendedJob *int64
	AppliedJob     int64
	MatchScore     float64
	Retained       bool
	Wage           float64
	SkillTotal     float64
	SkillGroup     string
}

// ReadOutcomesParquet reads an outcome table written by WriteOutcomesParquet.
// numSkills must match the number of skill columns written.
func ReadOutcomesParquet(ctx context.Context, path string, numSkills int) ([]OutcomeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := pqarrow.ReadTable(ctx, f, parquet.NewReaderProperties(memory.DefaultAllocator),
		pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer tbl.Release()

	want := 2 + numSkills + 7
	if got := int(tbl.NumCols()); got != want {
		return nil, fmt.Errorf("%s: %d columns, want %d", path, got, want)
	}
	if tbl.NumRows() == 0 {
		return nil, nil
	}

	rows := make([]OutcomeRow, 0, tbl.NumRows())
	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()

	base := 2 + numSkills
	for tr.Next() {
		rec := tr.Record()
		ids := rec.Column(0).(*array.Int64)
		treated := rec.Column(1).(*array.Boolean)
		recommended := rec.Column(base).(*array.Int64)
		applied := rec.Column(base + 1).(*array.Int64)
		match := rec.Column(base + 2).(*array.Float64)
		retained := rec.Column(base + 3).(*array.Boolean)
		wage := rec.Column(base + 4).(*array.Float64)
		total := rec.Column(base + 5).(*array.Float64)
		group := rec.Column(base + 6).(*array.String)

		for i := 0; i < int(rec.NumRows()); i++ {
			row := OutcomeRow{
				UserID:     ids.Value(i),
				Treated:    treated.Value(i),
				Skills:     make([]float64, numSkills),
				AppliedJob: applied.Value(i),
				MatchScore: match.Value(i),
				Retained:   retained.Value(i),
				Wage:       wage.Value(i),
				SkillTotal: total.Value(i),
				SkillGroup: group.Value(i),
			}
			for k := 0; k < numSkills; k++ {
				row.Skills[k] = rec.Column(2 + k).(*array.Float64).Value(i)
			}
			if recommended.IsValid(i) {
				id := recommended.Value(i)
				row.RecommendedJob = &id
			}
			rows = append(rows, row)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

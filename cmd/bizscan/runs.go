package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/sqlite"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	path := c.DB
	if path == "" {
		path = deps.DBPath
	}

	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set BIZSCAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	defer db.Close()

	var records bizscan.RecordService = sqlite.NewRecordStore(db)

	runs, err := records.FindRuns(deps.Ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'bizscan scrape --format sqlite' to store one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d records\n", run.ID, run.CreatedAt.Format(time.RFC3339), run.RecordCount)
	}

	if !c.Records {
		return nil
	}

	latest := runs[0].ID
	stored, err := records.FindRecords(deps.Ctx, bizscan.RecordFilter{RunID: &latest})
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout)
	for _, sr := range stored {
		r := sr.Record
		fmt.Fprintf(deps.Stdout, "%3d  %s  %s  %s\n", sr.Position,
			bizscan.StringValue(r.BusinessName), bizscan.StringValue(r.PhoneNumber), bizscan.StringValue(r.URL))
	}
	return nil
}

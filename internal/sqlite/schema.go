package sqlite

// Schema DDL. SQLite is a query cache rebuilt from JSONL on every Attach, so
// there are no migrations.
const (
	createBeds = `CREATE TABLE beds (
    bed_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    owner TEXT,
    grid_resolution_inches REAL NOT NULL,
    width_inches REAL NOT NULL,
    length_inches REAL NOT NULL,
    method TEXT NOT NULL,
    sun_exposure TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPlantings = `CREATE TABLE plantings (
    planting_id TEXT PRIMARY KEY,
    crop_id TEXT NOT NULL,
    variety TEXT,
    bed_id TEXT NOT NULL,
    pos_col INTEGER,
    pos_row INTEGER,
    seed_start_date TEXT,
    transplant_date TEXT,
    direct_seed_date TEXT,
    expected_harvest_date TEXT,
    actual_harvest_date TEXT,
    override INTEGER DEFAULT 0,
    provisional INTEGER DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (bed_id) REFERENCES beds(bed_id)
);`
)

// Index DDL for the occupant query.
const (
	idxPlantingsBed       = `CREATE INDEX idx_plantings_bed ON plantings(bed_id);`
	idxPlantingsOccupancy = `CREATE INDEX idx_plantings_occupancy ON plantings(bed_id, provisional, pos_col, pos_row);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createBeds,
	createPlantings,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPlantingsBed,
	idxPlantingsOccupancy,
}

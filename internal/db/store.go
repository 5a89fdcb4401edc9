package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/addcomposites/openaxis/internal/joints"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

// ErrNotFound is returned when a job ID does not exist.
var ErrNotFound = errors.New("job not found")

// axisCount is the number of joint axes the schema stores. The cell runs
// a six-axis arm.
const axisCount = 6

// JobRecord is the stored metadata for one manufacturing job.
type JobRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	TotalTime     float64   `json:"total_time_s"`
	WaypointCount int       `json:"waypoint_count"`
	LayerCount    int       `json:"layer_count"`
}

// CreateJob stores a job with its toolpath, per-waypoint reachability
// flags, and joint trajectory, all in one transaction. reachable and
// jointTr may be empty; when present, reachable must align 1:1 with the
// waypoints and every joint sample must have six axes.
func (db *DB) CreateJob(name string, tr *toolpath.Trajectory, jointTr joints.Trajectory, reachable []bool) (JobRecord, error) {
	if name == "" {
		return JobRecord{}, errors.New("job name must not be empty")
	}
	if tr == nil || len(tr.Waypoints) == 0 {
		return JobRecord{}, errors.New("job must have at least one waypoint")
	}
	if len(reachable) > 0 && len(reachable) != len(tr.Waypoints) {
		return JobRecord{}, fmt.Errorf("reachability flags (%d) do not match waypoints (%d)", len(reachable), len(tr.Waypoints))
	}
	for i, s := range jointTr {
		if len(s) != axisCount {
			return JobRecord{}, fmt.Errorf("joint sample %d has %d axes, want %d", i, len(s), axisCount)
		}
	}

	rec := JobRecord{
		ID:            uuid.NewString(),
		Name:          name,
		CreatedAt:     time.Now().UTC(),
		TotalTime:     tr.TotalTime(),
		WaypointCount: len(tr.Waypoints),
		LayerCount:    tr.TotalLayers(),
	}

	tx, err := db.Begin()
	if err != nil {
		return JobRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO jobs (id, name, created_at, total_time_s, waypoint_count, layer_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt, rec.TotalTime, rec.WaypointCount, rec.LayerCount)
	if err != nil {
		return JobRecord{}, fmt.Errorf("failed to insert job: %w", err)
	}

	wpStmt, err := tx.Prepare(`
		INSERT INTO waypoints (job_id, seq, x_mm, y_mm, z_mm, time_s, segment_type, layer, reachable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return JobRecord{}, fmt.Errorf("failed to prepare waypoint insert: %w", err)
	}
	defer wpStmt.Close()

	for i, wp := range tr.Waypoints {
		r := true
		if len(reachable) > 0 {
			r = reachable[i]
		}
		if _, err := wpStmt.Exec(rec.ID, i, wp.Position.X, wp.Position.Y, wp.Position.Z, wp.Time, wp.Kind.String(), wp.Layer, r); err != nil {
			return JobRecord{}, fmt.Errorf("failed to insert waypoint %d: %w", i, err)
		}
	}

	if len(jointTr) > 0 {
		jsStmt, err := tx.Prepare(`
			INSERT INTO joint_samples (job_id, seq, a0, a1, a2, a3, a4, a5)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return JobRecord{}, fmt.Errorf("failed to prepare joint insert: %w", err)
		}
		defer jsStmt.Close()

		for i, s := range jointTr {
			if _, err := jsStmt.Exec(rec.ID, i, s[0], s[1], s[2], s[3], s[4], s[5]); err != nil {
				return JobRecord{}, fmt.Errorf("failed to insert joint sample %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return JobRecord{}, fmt.Errorf("failed to commit job: %w", err)
	}
	return rec, nil
}

// GetJob returns the metadata for one job.
func (db *DB) GetJob(id string) (JobRecord, error) {
	var rec JobRecord
	err := db.QueryRow(`
		SELECT id, name, created_at, total_time_s, waypoint_count, layer_count
		FROM jobs WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &rec.TotalTime, &rec.WaypointCount, &rec.LayerCount)
	if errors.Is(err, sql.ErrNoRows) {
		return JobRecord{}, ErrNotFound
	}
	if err != nil {
		return JobRecord{}, fmt.Errorf("failed to query job: %w", err)
	}
	return rec, nil
}

// ListJobs returns all jobs, newest first.
func (db *DB) ListJobs() ([]JobRecord, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at, total_time_s, waypoint_count, layer_count
		FROM jobs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobRecord
	for rows.Next() {
		var rec JobRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &rec.TotalTime, &rec.WaypointCount, &rec.LayerCount); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, rec)
	}
	return jobs, rows.Err()
}

// LoadTrajectory returns a job's toolpath and per-waypoint reachability
// flags, in stored order.
func (db *DB) LoadTrajectory(id string) (*toolpath.Trajectory, []bool, error) {
	if _, err := db.GetJob(id); err != nil {
		return nil, nil, err
	}

	rows, err := db.Query(`
		SELECT x_mm, y_mm, z_mm, time_s, segment_type, layer, reachable
		FROM waypoints WHERE job_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query waypoints: %w", err)
	}
	defer rows.Close()

	tr := &toolpath.Trajectory{}
	var reachable []bool
	for rows.Next() {
		var wp toolpath.Waypoint
		var kind string
		var r bool
		if err := rows.Scan(&wp.Position.X, &wp.Position.Y, &wp.Position.Z, &wp.Time, &kind, &wp.Layer, &r); err != nil {
			return nil, nil, fmt.Errorf("failed to scan waypoint: %w", err)
		}
		wp.Kind = toolpath.ParseSegmentKind(kind)
		tr.Waypoints = append(tr.Waypoints, wp)
		reachable = append(reachable, r)
	}
	return tr, reachable, rows.Err()
}

// LoadJointTrajectory returns a job's joint samples in stored order.
// Jobs without inverse-kinematics output return an empty trajectory.
func (db *DB) LoadJointTrajectory(id string) (joints.Trajectory, error) {
	if _, err := db.GetJob(id); err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT a0, a1, a2, a3, a4, a5
		FROM joint_samples WHERE job_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query joint samples: %w", err)
	}
	defer rows.Close()

	var tr joints.Trajectory
	for rows.Next() {
		s := make(joints.Sample, axisCount)
		if err := rows.Scan(&s[0], &s[1], &s[2], &s[3], &s[4], &s[5]); err != nil {
			return nil, fmt.Errorf("failed to scan joint sample: %w", err)
		}
		tr = append(tr, s)
	}
	return tr, rows.Err()
}

// DeleteJob removes a job and its trajectories.
func (db *DB) DeleteJob(id string) error {
	res, err := db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

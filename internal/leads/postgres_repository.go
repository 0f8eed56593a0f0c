package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wolfman30/asbestos-leads/internal/qualification"
)

// db is satisfied by *pgxpool.Pool and pgxmock pools.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var leadColumns = strings.Join([]string{
	"id", "name", "email", "phone", "phone_e164", "inquiry_type", "message", "exposure",
	"diagnosis", "pathology_report", "diagnosis_timeline",
	"facility_id", "facility_slug", "state", "city", "page_url", "source",
	"quality_score", "qualification_level", "qualification_reasons",
	"email_valid", "phone_valid", "name_complete", "content_analysis",
	"export_status", "exported_at", "created_at",
}, ", ")

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, lead *Lead) (*Lead, error) {
	analysis, err := json.Marshal(lead.ContentAnalysis)
	if err != nil {
		return nil, fmt.Errorf("leads: encode content analysis: %w", err)
	}

	stored := *lead
	stored.ID = uuid.New().String()
	if stored.ExportStatus == "" {
		stored.ExportStatus = ExportPending
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	reasons := stored.QualificationReasons
	if reasons == nil {
		reasons = []string{}
	}

	query := `
		INSERT INTO leads (
			id, name, email, phone, phone_e164, inquiry_type, message, exposure,
			diagnosis, pathology_report, diagnosis_timeline,
			facility_id, facility_slug, state, city, page_url, source,
			quality_score, qualification_level, qualification_reasons,
			email_valid, phone_valid, name_complete, content_analysis, export_status,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query,
		stored.ID,
		stored.Name,
		stored.Email,
		stored.Phone,
		stored.PhoneE164,
		stored.InquiryType,
		stored.Message,
		stored.Exposure,
		stored.Diagnosis,
		stored.PathologyReport,
		stored.DiagnosisTimeline,
		stored.FacilityID,
		stored.FacilitySlug,
		stored.State,
		stored.City,
		stored.PageURL,
		stored.Source,
		stored.QualityScore,
		string(stored.QualificationLevel),
		reasons,
		stored.ContactQuality.EmailValid,
		stored.ContactQuality.PhoneValid,
		stored.ContactQuality.NameComplete,
		analysis,
		string(stored.ExportStatus),
		stored.CreatedAt,
	).Scan(&stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	return &stored, nil
}

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrLeadNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns leads newest first, optionally restricted to one tier.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	filter = filter.normalized()

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + leadColumns + ` FROM leads`)
	if filter.Level != "" {
		args = append(args, string(filter.Level))
		fmt.Fprintf(&sb, " WHERE qualification_level = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	return out, nil
}

// UpdateExportStatus records the outcome of a sheets export.
func (r *PostgresRepository) UpdateExportStatus(ctx context.Context, id string, status ExportStatus, at time.Time) error {
	var exportedAt *time.Time
	if status == ExportExported {
		ts := at.UTC()
		exportedAt = &ts
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE leads SET export_status = $2, exported_at = COALESCE($3, exported_at) WHERE id = $1`,
		id, string(status), exportedAt,
	)
	if err != nil {
		return fmt.Errorf("leads: update export status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*Lead, error) {
	var (
		lead       Lead
		level      string
		status     string
		analysis   []byte
		exportedAt *time.Time
	)
	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.PhoneE164,
		&lead.InquiryType,
		&lead.Message,
		&lead.Exposure,
		&lead.Diagnosis,
		&lead.PathologyReport,
		&lead.DiagnosisTimeline,
		&lead.FacilityID,
		&lead.FacilitySlug,
		&lead.State,
		&lead.City,
		&lead.PageURL,
		&lead.Source,
		&lead.QualityScore,
		&level,
		&lead.QualificationReasons,
		&lead.ContactQuality.EmailValid,
		&lead.ContactQuality.PhoneValid,
		&lead.ContactQuality.NameComplete,
		&analysis,
		&status,
		&exportedAt,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	lead.QualificationLevel = qualification.Level(level)
	lead.ExportStatus = ExportStatus(status)
	lead.ExportedAt = exportedAt
	if len(analysis) > 0 {
		if err := json.Unmarshal(analysis, &lead.ContentAnalysis); err != nil {
			return nil, fmt.Errorf("decode content analysis: %w", err)
		}
	}
	return &lead, nil
}

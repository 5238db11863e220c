package relation

import (
	"context"
	"errors"
	"time"

	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Machine interface {
	Kind() Kind

	// Establish activates the relationship and returns the number of active
	// relationships of the subject afterwards.
	Establish(ctx context.Context, subjectID, objectID int64) (int64, error)
	Withdraw(ctx context.Context, subjectID, objectID int64) error
	State(ctx context.Context, subjectID, objectID int64) (State, error)

	CountBySubject(ctx context.Context, subjectID int64) (int64, error)
	CountByObject(ctx context.Context, objectID int64) (int64, error)
}

type edgeRow struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt gorm.DeletedAt
}

type machine struct {
	kind Kind
	now  func() time.Time
}

func NewMachine(kind Kind) *machine {
	return &machine{kind: kind, now: time.Now}
}

func (m *machine) Kind() Kind {
	return m.kind
}

func (m *machine) Establish(ctx context.Context, subjectID, objectID int64) (int64, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	row, err := m.lockEdge(ctx, subjectID, objectID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s edge: %v", m.kind.Name, err)
		return 0, errorx.Unknown
	}

	switch {
	case row == nil:
		err = m.insert(ctx, subjectID, objectID)
	case row.DeletedAt.Valid:
		err = m.reactivate(ctx, subjectID, objectID)
	default:
		err = m.alreadyActive()
	}

	if err != nil {
		return 0, err
	}

	count, err := m.CountBySubject(ctx, subjectID)
	if err != nil {
		return 0, err
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit %s edge: %v", m.kind.Name, err)
		return 0, errorx.Unknown
	}

	return count, nil
}

func (m *machine) Withdraw(ctx context.Context, subjectID, objectID int64) error {
	tx := m.edge(ctx, subjectID, objectID).
		Where("deleted_at IS NULL").
		Update("deleted_at", m.now())
	if tx.Error != nil {
		xcontext.Logger(ctx).Errorf("Cannot withdraw %s edge: %v", m.kind.Name, tx.Error)
		return errorx.Unknown
	}

	if tx.RowsAffected == 0 {
		return errorx.New(errorx.NotActive, "The %s relationship is not active", m.kind.Name)
	}

	return nil
}

func (m *machine) State(ctx context.Context, subjectID, objectID int64) (State, error) {
	var rows []edgeRow
	err := m.edge(ctx, subjectID, objectID).
		Select("created_at", "updated_at", "deleted_at").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s edge: %v", m.kind.Name, err)
		return "", errorx.Unknown
	}

	if len(rows) == 0 {
		return Absent, nil
	}

	if rows[0].DeletedAt.Valid {
		return Removed, nil
	}

	return Active, nil
}

func (m *machine) CountBySubject(ctx context.Context, subjectID int64) (int64, error) {
	return m.count(ctx, m.kind.SubjectColumn, subjectID)
}

func (m *machine) CountByObject(ctx context.Context, objectID int64) (int64, error) {
	return m.count(ctx, m.kind.ObjectColumn, objectID)
}

func (m *machine) count(ctx context.Context, column string, id int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Table(m.kind.Table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count %s edges: %v", m.kind.Name, err)
		return 0, errorx.Unknown
	}

	return count, nil
}

func (m *machine) edge(ctx context.Context, subjectID, objectID int64) *gorm.DB {
	return xcontext.DB(ctx).Table(m.kind.Table).
		Where(clause.Eq{Column: clause.Column{Name: m.kind.SubjectColumn}, Value: subjectID}).
		Where(clause.Eq{Column: clause.Column{Name: m.kind.ObjectColumn}, Value: objectID})
}

// lockEdge reads the edge and locks it until the end of the transaction, a nil
// row means the edge has never existed.
func (m *machine) lockEdge(ctx context.Context, subjectID, objectID int64) (*edgeRow, error) {
	var rows []edgeRow
	err := m.edge(ctx, subjectID, objectID).
		Select("created_at", "updated_at", "deleted_at").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

func (m *machine) insert(ctx context.Context, subjectID, objectID int64) error {
	err := xcontext.DB(ctx).Table(m.kind.Table).Create(map[string]any{
		m.kind.SubjectColumn: subjectID,
		m.kind.ObjectColumn:  objectID,
		"created_at":         m.now(),
	}).Error
	if err != nil {
		// Another request inserted the same edge after our lookup.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return m.alreadyActive()
		}

		xcontext.Logger(ctx).Errorf("Cannot insert %s edge: %v", m.kind.Name, err)
		return errorx.Unknown
	}

	return nil
}

func (m *machine) reactivate(ctx context.Context, subjectID, objectID int64) error {
	tx := m.edge(ctx, subjectID, objectID).
		Where("deleted_at IS NOT NULL").
		Updates(map[string]any{
			"deleted_at": nil,
			"updated_at": m.now(),
		})
	if tx.Error != nil {
		xcontext.Logger(ctx).Errorf("Cannot reactivate %s edge: %v", m.kind.Name, tx.Error)
		return errorx.Unknown
	}

	if tx.RowsAffected == 0 {
		return m.alreadyActive()
	}

	return nil
}

func (m *machine) alreadyActive() error {
	return errorx.New(errorx.AlreadyExists, "The %s relationship is already active", m.kind.Name)
}

package postgres

import (
	"context"

	"todohub/internal/domain/entity"
	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/domain/repository"
	"todohub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row, making its token accepted by the gate.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUnauthorized.WrapMessage("invalid account reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required session information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	// Update the entity with generated values
	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// Find retrieves the session matching the (account, scope, token) triple
// verbatim. A structurally valid token whose row has been removed fails here,
// which is what makes logout effective.
func (repo *sessionRepository) Find(ctx context.Context, accountID uuid.UUID, scope, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ? AND scope = ? AND token = ?", accountID, scope, token).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	return toSessionDomain(&sessionM), nil
}

// DeleteByToken removes the session holding the exact token for the account.
// Zero rows affected is reported, not treated as an error; revoking an
// already-removed token is a no-op.
func (repo *sessionRepository) DeleteByToken(ctx context.Context, accountID uuid.UUID, token string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("account_id = ? AND token = ?", accountID, token).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete session")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:        data.ID,
		AccountID: data.AccountID,
		Scope:     data.Scope,
		Token:     data.Token,
		CreatedAt: data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		Scope:     data.Scope,
		Token:     data.Token,
		CreatedAt: data.CreatedAt,
	}
}

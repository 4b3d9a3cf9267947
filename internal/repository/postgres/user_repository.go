package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

// regionList maps the search_regions jsonb column.
type regionList []domain.Region

func (r regionList) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	return json.Marshal([]domain.Region(r))
}

func (r *regionList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]domain.Region)(r))
	case string:
		return json.Unmarshal([]byte(v), (*[]domain.Region)(r))
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("unsupported scan type %T for regionList", src)
	}
}

const userColumns = `
	id, username, nickname, password_hash,
	birthyear, gender, region1, region2, marriage, preference,
	search_birthyear_from, search_birthyear_to, search_regions,
	search_preference, search_marriage,
	search_disconnect_local_contacts, search_receive_off,
	search_only_with_photo, search_match_premium_only,
	emergency_is_active, emergency_activated_at,
	phone_hash, local_contact_hashes, receive_limit,
	profile_main, photo_count, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// scanUser reads one row in userColumns order.
func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var (
		u       domain.User
		regions regionList
		main    sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Nickname, &u.PasswordHash,
		&u.Birthyear, &u.Gender, &u.Region1, &u.Region2, &u.Marriage, &u.Preference,
		&u.SearchBirthyearFrom, &u.SearchBirthyearTo, &regions,
		&u.SearchPreference, &u.SearchMarriage,
		&u.DisconnectLocalContacts, &u.ReceiveOff,
		&u.OnlyWithPhoto, &u.MatchPremiumOnly,
		&u.Emergency.IsActive, &u.Emergency.ActivatedAt,
		&u.PhoneHash, pq.Array(&u.LocalContactHashes), &u.ReceiveLimit,
		&main, &u.PhotoCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.SearchRegions = regions
	if main.Valid {
		u.ProfileMain = &main.String
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			username, nickname, password_hash, birthyear, gender,
			region1, region2, marriage, preference,
			search_birthyear_from, search_birthyear_to, search_regions,
			search_preference, search_marriage,
			search_disconnect_local_contacts, search_receive_off,
			search_only_with_photo, search_match_premium_only,
			phone_hash, local_contact_hashes, receive_limit, profile_main, photo_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		user.Username, user.Nickname, user.PasswordHash, user.Birthyear, user.Gender,
		user.Region1, user.Region2, user.Marriage, user.Preference,
		user.SearchBirthyearFrom, user.SearchBirthyearTo, regionList(user.SearchRegions),
		user.SearchPreference, user.SearchMarriage,
		user.DisconnectLocalContacts.Normalize(), user.ReceiveOff.Normalize(),
		user.OnlyWithPhoto.Normalize(), user.MatchPremiumOnly.Normalize(),
		user.PhoneHash, pq.Array(user.LocalContactHashes), user.ReceiveLimit,
		user.ProfileMain, user.PhotoCount,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET nickname = $1, birthyear = $2, gender = $3,
		    region1 = $4, region2 = $5, marriage = $6, preference = $7,
		    search_birthyear_from = $8, search_birthyear_to = $9,
		    search_regions = $10, search_preference = $11, search_marriage = $12,
		    search_disconnect_local_contacts = $13, search_receive_off = $14,
		    search_only_with_photo = $15, search_match_premium_only = $16,
		    phone_hash = $17, local_contact_hashes = $18, receive_limit = $19,
		    profile_main = $20, photo_count = $21,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $22
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Nickname, user.Birthyear, user.Gender,
		user.Region1, user.Region2, user.Marriage, user.Preference,
		user.SearchBirthyearFrom, user.SearchBirthyearTo,
		regionList(user.SearchRegions), user.SearchPreference, user.SearchMarriage,
		user.DisconnectLocalContacts.Normalize(), user.ReceiveOff.Normalize(),
		user.OnlyWithPhoto.Normalize(), user.MatchPremiumOnly.Normalize(),
		user.PhoneHash, pq.Array(user.LocalContactHashes), user.ReceiveLimit,
		user.ProfileMain, user.PhotoCount,
		user.ID,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) SetEmergency(ctx context.Context, userID int64, active bool, activatedAt *time.Time) error {
	query := `
		UPDATE users
		SET emergency_is_active = $1, emergency_activated_at = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, active, activatedAt, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListCandidates(ctx context.Context, viewer *domain.User, regions []domain.Region) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1`
	args := []interface{}{viewer.ID}
	argCount := 2

	// Same phone number is never shown, switches aside.
	if viewer.PhoneHash != "" {
		query += fmt.Sprintf(" AND (phone_hash = '' OR phone_hash <> $%d)", argCount)
		args = append(args, viewer.PhoneHash)
		argCount++
	}

	// Contact exclusion push-down, both directions.
	if viewer.DisconnectLocalContacts.Bool() && len(viewer.LocalContactHashes) > 0 {
		query += fmt.Sprintf(" AND NOT (phone_hash = ANY($%d))", argCount)
		args = append(args, pq.Array(viewer.LocalContactHashes))
		argCount++
	}
	if viewer.PhoneHash != "" {
		query += fmt.Sprintf(
			" AND NOT (search_disconnect_local_contacts = 'ON' AND $%d = ANY(local_contact_hashes))",
			argCount)
		args = append(args, viewer.PhoneHash)
		argCount++
	}

	// Optional region disjunction; a wildcard anywhere disables it.
	if conds, regionArgs := regionConditions(regions, &argCount); conds != "" {
		query += " AND (" + conds + ")"
		args = append(args, regionArgs...)
	}

	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// regionConditions renders the OR over region pairs; it returns "" when any
// pair is a full wildcard.
func regionConditions(regions []domain.Region, argCount *int) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	for _, reg := range regions {
		r1 := strings.TrimSpace(reg.Region1)
		r2 := strings.TrimSpace(reg.Region2)
		if r1 == "" || r1 == domain.Wildcard {
			return "", nil
		}
		if r2 == "" || r2 == domain.Wildcard {
			conds = append(conds, fmt.Sprintf("region1 = $%d", *argCount))
			args = append(args, r1)
			*argCount++
			continue
		}
		conds = append(conds, fmt.Sprintf("(region1 = $%d AND region2 = $%d)", *argCount, *argCount+1))
		args = append(args, r1, r2)
		*argCount += 2
	}
	return strings.Join(conds, " OR "), args
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListActiveIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE deleted_at IS NULL ORDER BY id`)
	return ids, err
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
)

// Sort column and direction whitelists for listing session records. Anything
// else falls back to the default rather than reaching the SQL text.
const (
	SortByTimestamp = "timestamp"
	SortByID        = "id"

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// ConversationStore persists question/response pairs grouped by session.
type ConversationStore struct {
	pool *pgxpool.Pool
}

// NewConversationStore builds a conversation store on the shared pool.
func NewConversationStore(pool *pgxpool.Pool) *ConversationStore {
	return &ConversationStore{pool: pool}
}

// Append upserts a session record: a new session id creates the record, an
// existing one gets the turn appended and its timestamp refreshed. Retried
// calls append duplicate turns; callers log exactly once per exchange.
func (s *ConversationStore) Append(ctx context.Context, sessionID, question, response string) (chat.SessionRecord, error) {
	now := time.Now().UTC()
	turn := chat.Turn{
		ID:        uuid.NewString(),
		Question:  question,
		Response:  response,
		Timestamp: now,
	}

	var existing []chat.Turn
	var recordID int64
	err := s.pool.QueryRow(ctx,
		`SELECT id, conversation_data FROM conversation_logs WHERE session_id = $1`,
		sessionID,
	).Scan(&recordID, &existing)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return s.insert(ctx, sessionID, question, response, []chat.Turn{turn}, now)
	case err != nil:
		return chat.SessionRecord{}, errs.Persistencef("looking up session record", err)
	}

	turns := append(existing, turn)
	return s.update(ctx, recordID, turns, now)
}

// List returns every session record ordered as requested.
func (s *ConversationStore) List(ctx context.Context, sortBy, order string) ([]chat.SessionRecord, error) {
	column := SortByTimestamp
	if sortBy == SortByID {
		column = SortByID
	}
	direction := OrderDesc
	if order == OrderAsc {
		direction = OrderAsc
	}

	query := fmt.Sprintf(`
		SELECT id, session_id, question, response, conversation_data, timestamp
		FROM conversation_logs
		ORDER BY %s %s`, column, direction)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, errs.Persistencef("listing session records", err)
	}
	defer rows.Close()

	var records []chat.SessionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistencef("reading session records", err)
	}

	return records, nil
}

func (s *ConversationStore) insert(ctx context.Context, sessionID, question, response string, turns []chat.Turn, now time.Time) (chat.SessionRecord, error) {
	data, err := json.Marshal(turns)
	if err != nil {
		return chat.SessionRecord{}, errs.Persistencef("encoding conversation data", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO conversation_logs (session_id, question, response, conversation_data, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, question, response, conversation_data, timestamp`,
		sessionID, question, response, data, now)

	record, err := scanRecord(row)
	if err != nil {
		return chat.SessionRecord{}, err
	}
	return record, nil
}

func (s *ConversationStore) update(ctx context.Context, recordID int64, turns []chat.Turn, now time.Time) (chat.SessionRecord, error) {
	data, err := json.Marshal(turns)
	if err != nil {
		return chat.SessionRecord{}, errs.Persistencef("encoding conversation data", err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE conversation_logs
		SET conversation_data = $1, timestamp = $2
		WHERE id = $3
		RETURNING id, session_id, question, response, conversation_data, timestamp`,
		data, now, recordID)

	record, err := scanRecord(row)
	if err != nil {
		return chat.SessionRecord{}, err
	}
	return record, nil
}

func scanRecord(row pgx.Row) (chat.SessionRecord, error) {
	var record chat.SessionRecord
	var data []byte
	if err := row.Scan(&record.ID, &record.SessionID, &record.Question, &record.Response, &data, &record.Timestamp); err != nil {
		return chat.SessionRecord{}, errs.Persistencef("scanning session record", err)
	}
	if err := json.Unmarshal(data, &record.Turns); err != nil {
		return chat.SessionRecord{}, errs.Persistencef("decoding conversation data", err)
	}
	return record, nil
}

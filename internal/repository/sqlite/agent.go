package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chatserver/internal/domain"
)

// AgentRepository implements domain.AgentRepository
type AgentRepository struct {
	db *DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *DB) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentColumns = `id, chat_id, name, type, adapter, model, prompt, args, created_at, updated_at`

// Create inserts a new chat agent
func (r *AgentRepository) Create(ctx context.Context, agent *domain.ChatAgent) (*domain.ChatAgent, error) {
	args := agent.Args
	if args == nil {
		args = map[string]any{}
	}
	encoded, err := encodeJSON(args)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := r.db.Conn.QueryRowContext(ctx,
		`INSERT INTO chat_agents (chat_id, name, type, adapter, model, prompt, args, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+agentColumns,
		agent.ChatID, agent.Name, agent.Type, agent.Adapter, agent.Model, agent.Prompt, encoded, now, now)

	created, err := scanAgent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return created, nil
}

// Update patches an agent's prompt, model and args
func (r *AgentRepository) Update(ctx context.Context, chatID, agentID int64, input domain.AgentUpdate) (*domain.ChatAgent, error) {
	var encoded *string
	if input.Args != nil {
		s, err := encodeJSON(input.Args)
		if err != nil {
			return nil, err
		}
		encoded = &s
	}

	row := r.db.Conn.QueryRowContext(ctx,
		`UPDATE chat_agents
		 SET prompt = COALESCE(?, prompt),
		     model = COALESCE(?, model),
		     args = COALESCE(?, args),
		     updated_at = ?
		 WHERE id = ? AND chat_id = ?
		 RETURNING `+agentColumns,
		input.Prompt, input.Model, encoded, time.Now().UTC(), agentID, chatID)

	agent, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
		}
		return nil, err
	}
	return agent, nil
}

// ListByChat retrieves a chat's agents in ascending id order
func (r *AgentRepository) ListByChat(ctx context.Context, chatID int64) ([]domain.ChatAgent, error) {
	rows, err := r.db.Conn.QueryContext(ctx,
		`SELECT `+agentColumns+` FROM chat_agents WHERE chat_id = ? ORDER BY id ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []domain.ChatAgent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *agent)
	}
	return agents, rows.Err()
}

// Exists checks whether a chat already has an agent with the name
func (r *AgentRepository) Exists(ctx context.Context, chatID int64, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM chat_agents WHERE chat_id = ? AND name = ?)`
	if err := r.db.Conn.QueryRowContext(ctx, query, chatID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check agent: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*domain.ChatAgent, error) {
	var agent domain.ChatAgent
	var encoded string
	err := row.Scan(
		&agent.ID,
		&agent.ChatID,
		&agent.Name,
		&agent.Type,
		&agent.Adapter,
		&agent.Model,
		&agent.Prompt,
		&encoded,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan agent: %w", err)
	}

	if encoded != "" {
		if err := decodeJSON(encoded, &agent.Args); err != nil {
			return nil, err
		}
	}
	return &agent, nil
}

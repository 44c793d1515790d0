package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chatserver/internal/domain"

	"github.com/jackc/pgx/v5"
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
	args, err := marshalArgs(agent.Args)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO chat_agents (chat_id, name, type, adapter, model, prompt, args)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + agentColumns

	row := r.db.Pool.QueryRow(ctx, query,
		agent.ChatID, agent.Name, agent.Type, agent.Adapter, agent.Model, agent.Prompt, args)

	created, err := scanAgent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return created, nil
}

// Update patches an agent's prompt, model and args
func (r *AgentRepository) Update(ctx context.Context, chatID, agentID int64, input domain.AgentUpdate) (*domain.ChatAgent, error) {
	var args []byte
	if input.Args != nil {
		var err error
		if args, err = marshalArgs(input.Args); err != nil {
			return nil, err
		}
	}

	query := `
		UPDATE chat_agents
		SET prompt = COALESCE($1, prompt),
		    model = COALESCE($2, model),
		    args = COALESCE($3, args),
		    updated_at = NOW()
		WHERE id = $4 AND chat_id = $5
		RETURNING ` + agentColumns

	agent, err := scanAgent(r.db.Pool.QueryRow(ctx, query, input.Prompt, input.Model, args, agentID, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
		}
		return nil, err
	}
	return agent, nil
}

// ListByChat retrieves a chat's agents in ascending id order
func (r *AgentRepository) ListByChat(ctx context.Context, chatID int64) ([]domain.ChatAgent, error) {
	query := `SELECT ` + agentColumns + ` FROM chat_agents WHERE chat_id = $1 ORDER BY id ASC`

	rows, err := r.db.Pool.Query(ctx, query, chatID)
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
	query := `SELECT EXISTS(SELECT 1 FROM chat_agents WHERE chat_id = $1 AND name = $2)`
	if err := r.db.Pool.QueryRow(ctx, query, chatID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check agent: %w", err)
	}
	return exists, nil
}

func marshalArgs(args map[string]any) ([]byte, error) {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}
	return data, nil
}

func scanAgent(row pgx.Row) (*domain.ChatAgent, error) {
	var agent domain.ChatAgent
	var args []byte
	err := row.Scan(
		&agent.ID,
		&agent.ChatID,
		&agent.Name,
		&agent.Type,
		&agent.Adapter,
		&agent.Model,
		&agent.Prompt,
		&args,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan agent: %w", err)
	}

	if len(args) > 0 {
		if err := json.Unmarshal(args, &agent.Args); err != nil {
			return nil, fmt.Errorf("failed to unmarshal args: %w", err)
		}
	}

	return &agent, nil
}

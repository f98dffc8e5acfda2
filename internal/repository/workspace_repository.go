package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
	"github.com/taskmaster/taskmaster-api/internal/models"
)

// DynamoWorkspaceRepository is a DynamoDB implementation of WorkspaceRepository.
type DynamoWorkspaceRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewWorkspaceRepository creates a new DynamoDB-backed WorkspaceRepository.
func NewWorkspaceRepository(client *dynamodb.Client, tableName string) WorkspaceRepository {
	return &DynamoWorkspaceRepository{client: client, tableName: tableName}
}

func workspaceItemKey(workspaceID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.WorkspaceKey(workspaceID)},
		"SK": &types.AttributeValueMemberS{Value: models.WorkspaceMetadataSK},
	}
}

// Create stores a new workspace, failing if the key already exists.
func (r *DynamoWorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	item, err := attributevalue.MarshalMap(workspace)
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrWorkspaceExists
		}
		return fmt.Errorf("failed to put workspace: %w", err)
	}

	log.Debug().
		Str("workspace_id", workspace.WorkspaceID).
		Str("owner", workspace.Owner).
		Msg("workspace created")

	return nil
}

// FindByID finds a workspace by ID.
func (r *DynamoWorkspaceRepository) FindByID(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       workspaceItemKey(workspaceID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if result.Item == nil {
		return nil, ErrWorkspaceNotFound
	}

	var workspace models.Workspace
	if err := attributevalue.UnmarshalMap(result.Item, &workspace); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace: %w", err)
	}

	return &workspace, nil
}

// Save overwrites an existing workspace record, failing if it does not exist.
func (r *DynamoWorkspaceRepository) Save(ctx context.Context, workspace *models.Workspace) error {
	item, err := attributevalue.MarshalMap(workspace)
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to save workspace: %w", err)
	}

	log.Debug().
		Str("workspace_id", workspace.WorkspaceID).
		Int("members", len(workspace.Members)).
		Msg("workspace saved")

	return nil
}

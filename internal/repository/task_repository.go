package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
	"github.com/taskmaster/taskmaster-api/internal/models"
)

// UserIndexName is the GSI keyed by the task's secondary-access key.
const UserIndexName = "UserIndex"

// DynamoTaskRepository is a DynamoDB implementation of TaskRepository.
type DynamoTaskRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewTaskRepository creates a new DynamoDB-backed TaskRepository.
func NewTaskRepository(client *dynamodb.Client, tableName string) TaskRepository {
	return &DynamoTaskRepository{client: client, tableName: tableName}
}

func taskItemKey(workspaceID, taskID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.WorkspaceKey(workspaceID)},
		"SK": &types.AttributeValueMemberS{Value: models.TaskKey(taskID)},
	}
}

// Create stores a new task.
func (r *DynamoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	item, err := attributevalue.MarshalMap(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put task: %w", err)
	}

	log.Debug().
		Str("task_id", task.TaskID).
		Str("workspace_id", task.WorkspaceID).
		Msg("task created")

	return nil
}

// FindByID finds a task by its (workspace, task) composite key.
func (r *DynamoTaskRepository) FindByID(ctx context.Context, workspaceID, taskID string) (*models.Task, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       taskItemKey(workspaceID, taskID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if result.Item == nil {
		return nil, ErrTaskNotFound
	}

	var task models.Task
	if err := attributevalue.UnmarshalMap(result.Item, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}

	return &task, nil
}

// ListByWorkspace returns every task in the workspace partition.
func (r *DynamoTaskRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(models.WorkspaceKey(workspaceID))).
		And(expression.KeyBeginsWith(expression.Key("SK"), models.TaskKeyPrefix))

	return r.queryTasks(ctx, keyCond, nil)
}

// ListByAccessUser returns tasks keyed to the user on the UserIndex.
func (r *DynamoTaskRepository) ListByAccessUser(ctx context.Context, userID string) ([]models.Task, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(models.UserRef(userID))).
		And(expression.KeyBeginsWith(expression.Key("GSI1SK"), models.TaskKeyPrefix))

	return r.queryTasks(ctx, keyCond, aws.String(UserIndexName))
}

func (r *DynamoTaskRepository) queryTasks(ctx context.Context, keyCond expression.KeyConditionBuilder, indexName *string) ([]models.Task, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	tasks := []models.Task{}
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 indexName,
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query tasks: %w", err)
		}

		var page []models.Task
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
		}
		tasks = append(tasks, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return tasks, nil
}

// ApplyChanges applies a change set as a single unconditional point write and
// returns the updated record. Last writer wins.
func (r *DynamoTaskRepository) ApplyChanges(ctx context.Context, workspaceID, taskID string, changes ChangeSet) (*models.Task, error) {
	update := expression.UpdateBuilder{}
	for name, value := range changes {
		update = update.Set(expression.Name(name), expression.Value(value))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       taskItemKey(workspaceID, taskID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	var task models.Task
	if err := attributevalue.UnmarshalMap(result.Attributes, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated task: %w", err)
	}

	log.Debug().
		Str("task_id", taskID).
		Str("workspace_id", workspaceID).
		Int("fields", len(changes)).
		Msg("task updated")

	return &task, nil
}

// Delete removes a task record.
func (r *DynamoTaskRepository) Delete(ctx context.Context, workspaceID, taskID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       taskItemKey(workspaceID, taskID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Debug().
		Str("task_id", taskID).
		Str("workspace_id", workspaceID).
		Msg("task deleted")

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/taskmaster/taskmaster-api/internal/models"
)

// DynamoUserRepository is a DynamoDB implementation of UserRepository.
type DynamoUserRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewUserRepository creates a new DynamoDB-backed UserRepository.
func NewUserRepository(client *dynamodb.Client, tableName string) UserRepository {
	return &DynamoUserRepository{client: client, tableName: tableName}
}

func userItemKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.UserRef(userID)},
		"SK": &types.AttributeValueMemberS{Value: models.UserProfileSK},
	}
}

// Create stores a new user profile, failing if the key already exists.
func (r *DynamoUserRepository) Create(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to put user: %w", err)
	}

	return nil
}

// FindByID finds a user profile by ID.
func (r *DynamoUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       userItemKey(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if result.Item == nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

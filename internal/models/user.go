package models

type SubscriptionTier string

const (
	SubscriptionFree       SubscriptionTier = "free"
	SubscriptionPremium    SubscriptionTier = "premium"
	SubscriptionEnterprise SubscriptionTier = "enterprise"
)

// User is the profile record stored at PK=USER#<id>, SK=PROFILE. Credentials
// live in the identity provider, never here.
type User struct {
	PK           string           `dynamodbav:"PK" json:"-"`
	SK           string           `dynamodbav:"SK" json:"-"`
	UserID       string           `dynamodbav:"userId" json:"userId"`
	Email        string           `dynamodbav:"email" json:"email"`
	Name         string           `dynamodbav:"name" json:"name"`
	Avatar       string           `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`
	Subscription SubscriptionTier `dynamodbav:"subscription" json:"subscription"`
	CreatedAt    string           `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    string           `dynamodbav:"updatedAt" json:"updatedAt"`
}

// SetKeys derives the composite key from the user ID.
func (u *User) SetKeys() {
	u.PK = UserRef(u.UserID)
	u.SK = UserProfileSK
}

package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/auth/provider"
	"github.com/zstrangeway/plydojo/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

const providerName = "cognito"

// API is the subset of the Cognito user pool client used by Provider.
// *cognitoidentityprovider.Client satisfies it.
type API interface {
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	ForgotPassword(ctx context.Context, params *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	AdminCreateUser(ctx context.Context, params *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
}

// Provider implements provider.IdentityProvider against a Cognito user pool.
// It returns provider facts only; no user-facing decisions are made here.
type Provider struct {
	api          API
	userPoolID   string
	clientID     string
	clientSecret string
}

// New wraps a Cognito client. clientSecret may be empty for public app clients.
func New(api API, userPoolID, clientID, clientSecret string) (*Provider, error) {
	if api == nil || userPoolID == "" || clientID == "" {
		return nil, errors.New("cognito config missing required fields")
	}

	return &Provider{
		api:          api,
		userPoolID:   userPoolID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

// Name returns the provider identifier used in logs.
func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) InitiatePasswordAuth(
	ctx context.Context,
	email string,
	password string,
) (*auth.TokenSet, error) {

	params := map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	}
	if hash := p.secretHash(email); hash != "" {
		params["SECRET_HASH"] = hash
	}

	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(p.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return nil, p.translate("InitiateAuth", err)
	}

	result := out.AuthenticationResult
	if result == nil {
		// a challenge (e.g. NEW_PASSWORD_REQUIRED) was returned instead of tokens
		logger.Warn("cognito auth returned no tokens", map[string]any{
			"challenge": string(out.ChallengeName),
		})
		return &auth.TokenSet{}, nil
	}

	return &auth.TokenSet{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
	}, nil
}

func (p *Provider) ForgotPassword(ctx context.Context, email string) error {
	in := &cip.ForgotPasswordInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	}
	if hash := p.secretHash(email); hash != "" {
		in.SecretHash = aws.String(hash)
	}

	if _, err := p.api.ForgotPassword(ctx, in); err != nil {
		return p.translate("ForgotPassword", err)
	}
	return nil
}

func (p *Provider) AdminCreateUser(ctx context.Context, u provider.NewUser) (string, error) {
	verified := "false"
	if u.EmailVerified {
		verified = "true"
	}

	out, err := p.api.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(u.Email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(u.Email)},
			{Name: aws.String("name"), Value: aws.String(u.Name)},
			{Name: aws.String("email_verified"), Value: aws.String(verified)},
		},
		MessageAction:     types.MessageActionTypeSuppress,
		TemporaryPassword: aws.String(u.TemporaryPassword),
	})
	if err != nil {
		return "", p.translate("AdminCreateUser", err)
	}

	if out.User == nil {
		return "", nil
	}
	return aws.ToString(out.User.Username), nil
}

func (p *Provider) AdminSetPassword(ctx context.Context, email string, password string) error {
	_, err := p.api.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		return p.translate("AdminSetUserPassword", err)
	}
	return nil
}

// secretHash computes SECRET_HASH for app clients that have a secret.
func (p *Provider) secretHash(username string) string {
	if p.clientSecret == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(p.clientSecret))
	mac.Write([]byte(username + p.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// translate maps Cognito exceptions onto provider sentinel errors.
func (p *Provider) translate(op string, err error) error {
	var (
		notAuthorized *types.NotAuthorizedException
		notFound      *types.UserNotFoundException
		tooMany       *types.TooManyRequestsException
		limit         *types.LimitExceededException
		notConfirmed  *types.UserNotConfirmedException
		exists        *types.UsernameExistsException
		badPassword   *types.InvalidPasswordException
	)

	var category error
	switch {
	case errors.As(err, &notAuthorized):
		category = provider.ErrNotAuthorized
	case errors.As(err, &notFound):
		category = provider.ErrUserNotFound
	case errors.As(err, &tooMany), errors.As(err, &limit):
		category = provider.ErrTooManyRequests
	case errors.As(err, &notConfirmed):
		category = provider.ErrUserNotConfirmed
	case errors.As(err, &exists):
		category = provider.ErrUsernameExists
	case errors.As(err, &badPassword):
		category = provider.ErrInvalidPassword
	default:
		category = provider.ErrUnavailable
	}

	logger.Info("cognito call failed", map[string]any{
		"operation": op,
		"code":      errorCode(err),
		"category":  category.Error(),
	})

	return fmt.Errorf("%w: %s: %w", category, op, err)
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}
	return "Unknown"
}

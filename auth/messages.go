package auth

import "github.com/nemopss/spendwise/models"

const (
	msgOAuthAccountExists    = "This email is already linked to a Google or GitHub account."
	msgInvalidPassword       = "Invalid email or password."
	msgUserNotFound          = "No account found with this email."
	msgOAuthAccountNotLinked = "An account with this email exists but is linked to another provider. Please sign in with your other method."
	msgUnknown               = "An authentication error occurred. Please try again."
)

// SignInResponseFor maps a sign-in failure onto the message shown to the
// user. Anything outside the known kinds collapses to a generic message;
// callers log the detail. A nil err is a success.
func SignInResponseFor(err error) models.SignInResponse {
	if err == nil {
		return models.SignInResponse{Success: true}
	}

	kind := KindOf(err)
	resp := models.SignInResponse{Success: false, ErrorType: kind.String()}
	switch kind {
	case OAuthAccountExists:
		resp.Message = msgOAuthAccountExists
	case InvalidPassword:
		resp.Message = msgInvalidPassword
	case UserNotFound:
		resp.Message = msgUserNotFound
	case OAuthAccountNotLinked:
		resp.Message = msgOAuthAccountNotLinked
	default:
		resp.ErrorType = KindUnknown.String()
		resp.Message = msgUnknown
	}
	return resp
}

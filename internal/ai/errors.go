package ai

import (
	"errors"
	"fmt"
	"time"
)

// AuthError indicates authentication/authorization failures (401/403).
type AuthError struct{ *APIError }

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.APIError.Error())
}

// RateLimitError indicates 429 responses and may include a Retry-After.
type RateLimitError struct {
	*APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: wait about %ds before retrying: %s", int(e.RetryAfter.Seconds()), e.APIError.Error())
	}
	return fmt.Sprintf("rate limited: %s", e.APIError.Error())
}

// ModelNotFoundError indicates the requested model is not available.
type ModelNotFoundError struct{ *APIError }

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model not found: %s", e.APIError.Error())
}

// BadRequestError indicates a 400 validation problem.
type BadRequestError struct{ *APIError }

func (e *BadRequestError) Error() string { return fmt.Sprintf("bad request: %s", e.APIError.Error()) }

// QuotaExceededError indicates billing/quota problems.
type QuotaExceededError struct{ *APIError }

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %s", e.APIError.Error())
}

// ServerError indicates 5xx errors from the provider.
type ServerError struct{ *APIError }

func (e *ServerError) Error() string { return fmt.Sprintf("provider error: %s", e.APIError.Error()) }

// UnreachableError indicates the endpoint could not be contacted at all.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e == nil {
		return "unreachable"
	}
	if e.Host != "" {
		return fmt.Sprintf("endpoint unreachable at %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("endpoint unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// Hint turns a runtime error into an actionable message for the command
// line. provider and model name what was being called.
func Hint(err error, provider, model string) error {
	var (
		authErr *AuthError
		rlErr   *RateLimitError
		nfErr   *ModelNotFoundError
		brErr   *BadRequestError
		qErr    *QuotaExceededError
		sErr    *ServerError
		unreach *UnreachableError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &unreach):
		if provider == ProviderOllama {
			return fmt.Errorf("Ollama not reachable at %s. Ensure it is running or set LOGISIGHT_OLLAMA_HOST: %w", unreach.Host, err)
		}
		return fmt.Errorf("endpoint unreachable, check network and provider settings: %w", err)
	case errors.As(err, &authErr):
		return fmt.Errorf("set LOGISIGHT_API_KEY or api_key in ~/.logisight/config.yaml: %w", err)
	case errors.As(err, &rlErr):
		if rlErr.RetryAfter > 0 {
			return fmt.Errorf("rate limited, try again in ~%ds: %w", int(rlErr.RetryAfter.Seconds()), err)
		}
		return fmt.Errorf("rate limited by provider, please retry: %w", err)
	case errors.As(err, &nfErr):
		if provider == ProviderOllama {
			return fmt.Errorf("local model %s not available, install it with 'ollama pull %s': %w", model, model, err)
		}
		return fmt.Errorf("model %s not found, check the model name: %w", model, err)
	case errors.As(err, &brErr):
		return fmt.Errorf("request rejected, try a shorter question or fewer columns: %w", err)
	case errors.As(err, &qErr):
		return fmt.Errorf("quota or billing issue, check your provider account: %w", err)
	case errors.As(err, &sErr):
		return fmt.Errorf("provider unavailable, please retry later: %w", err)
	}
	return err
}

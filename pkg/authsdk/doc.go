/*
Package authsdk is a typed client for the identity endpoints of the Mudras
backend.

# Overview

The gateway exchanges credentials and tokens with the backend through this
package:

	client := authsdk.NewClient("http://backend:4000", httpClient, secretKey)

	// Credentials as sent by the browser, forwarded untouched.
	login, err := client.Login(ctx, body)

	// Rotate a session.
	pair, err := client.Refresh(ctx, refreshToken)

	// Resolve who a token belongs to.
	perfil, err := client.Perfil(ctx, token)

# Errors

Every method classifies failures into one of three typed errors so callers
can map them onto HTTP responses without inspecting status codes:

  - *RejectedError: the backend answered with a non-2xx status. Body holds the
    raw text so it can be relayed verbatim.
  - *ContractError: the backend answered 2xx but not with JSON, or with JSON
    that does not decode.
  - *UnreachableError: the request never produced a response.

Example:

	_, err := client.Login(ctx, body)
	var rejected *authsdk.RejectedError
	if errors.As(err, &rejected) {
		fmt.Println(rejected.StatusCode, rejected.Message("Credenciales inválidas"))
	}

# Secret key

When configured, every request carries the X-Secret-Key header which
authenticates the caller itself, independent of any end-user token.
*/
package authsdk

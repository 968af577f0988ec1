// Package auth holds the authentication and authorization core: the token
// codec that signs and verifies claim sets, the principal type resolved
// from bearer tokens, and the role gate applied to protected routes.
//
// The package knows nothing about HTTP or storage. Callers obtain a
// [Principal] only through [Resolver] (or [PrincipalFromClaims] in tests),
// and decide access only through [HasRole].
//
// Roles are trusted as embedded in the token: a role granted or revoked in
// the store takes effect when the next token is minted (login or refresh),
// and a deactivated account keeps working until its access token expires.
package auth

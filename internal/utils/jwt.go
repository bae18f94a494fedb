package utils // package utils provides helpers for token creation and parsing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT along with its expiry.  The Token
// field contains the serialized JWT string and Exp its UTC expiration.
// Tokens are sent in the Authorization header when calling protected
// endpoints and may optionally accompany booking creation.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Identity is the decoded content of a bearer token: who the caller is and
// what they may do.  It is what handlers receive after middleware has
// validated (or best-effort parsed) the Authorization header.
type Identity struct {
    UserID uint64 // subject claim, the users.id
    Email  string // email claim
    Role   string // role claim ("user" or "admin")
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT carries
// the subject (sub), email and role claims plus expiration (exp) and issued
// at (iat).  ttlHours controls how long the token stays valid; the original
// deployment issues week-long tokens and no refresh rotation exists.
func NewAccessToken(secret string, userID uint64, email, role string, ttlHours int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub":   userID,
        "email": email,
        "role":  role,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

var errBadToken = errors.New("invalid token")

// ParseAccessToken validates a raw JWT against the secret and extracts the
// caller's identity.  It rejects tokens signed with anything but HMAC.
// Callers that tolerate anonymous access (booking creation) treat any error
// as "no identity" rather than failing the request.
func ParseAccessToken(secret, raw string) (Identity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errBadToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Identity{}, errBadToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, errBadToken
    }
    var id Identity
    // Numeric claims decode as float64 through encoding/json.
    switch v := claims["sub"].(type) {
    case float64:
        id.UserID = uint64(v)
    default:
        return Identity{}, errBadToken
    }
    if v, ok := claims["email"].(string); ok {
        id.Email = v
    }
    if v, ok := claims["role"].(string); ok {
        id.Role = v
    }
    if id.UserID == 0 {
        return Identity{}, errBadToken
    }
    return id, nil
}

package context

import (
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/gin-gonic/gin"
)

// Context keys for storing user authentication information
const (
	UserIDKey      = "user_id"
	MemberIDKey    = "member_id"
	MemberEmailKey = "member_email"
	IsAdminKey     = "is_admin"
)

// Principal is the authenticated caller as set by the JWT middleware
type Principal struct {
	UserID   uint32
	MemberID uint32
	Email    string
	IsAdmin  bool
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(UserIDKey, p.UserID)
	c.Set(MemberIDKey, p.MemberID)
	c.Set(MemberEmailKey, p.Email)
	c.Set(IsAdminKey, p.IsAdmin)
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return Principal{}, false
	}
	uid, ok := userID.(uint32)
	if !ok {
		return Principal{}, false
	}
	p := Principal{UserID: uid}
	p.MemberID = getUint32(c, MemberIDKey)
	p.Email = c.GetString(MemberEmailKey)
	p.IsAdmin = c.GetBool(IsAdminKey)
	return p, true
}

func getUint32(c *gin.Context, key string) uint32 {
	if v, ok := c.Get(key); ok {
		if id, ok := v.(uint32); ok {
			return id
		}
	}
	return 0
}

func GetMemberID(c *gin.Context) (uint32, bool) {
	p, ok := GetPrincipal(c)
	if !ok || p.MemberID == 0 {
		return 0, false
	}
	return p.MemberID, true
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(IsAdminKey)
}

// RequirePrincipal returns the caller or replies 401 and aborts.
func RequirePrincipal(c *gin.Context) (Principal, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		abortUnauthorized(c)
		return Principal{}, false
	}
	return p, true
}

// RequireMemberID retrieves the authenticated member's ID from the Gin context.
// If it is missing, a 401 is sent and the chain aborted.
func RequireMemberID(c *gin.Context) (uint32, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		abortUnauthorized(c)
		return 0, false
	}
	return memberID, true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(sharedError.Unauthorized.Status, sharedError.Wrap(sharedError.Unauthorized))
	logger.FromContext(c.Request.Context()).Error("[API] context에 회원 ID가 존재하지 않습니다.")
}

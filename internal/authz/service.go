package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service Casbin 授权服务
// 封装买家/卖家角色的策略加载与授权判定
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	svc := &Service{enforcer: enforcer}
	if err := svc.seedRolePolicies(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Enforcer 返回底层 enforcer
func (s *Service) Enforcer() *casbin.SyncedEnforcer {
	if s == nil {
		return nil
	}
	return s.enforcer
}

// UserSubject 生成用户主体标识
func UserSubject(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

// RoleSubject 生成角色主体标识
func RoleSubject(role string) string {
	return rolePrefix + strings.ToLower(strings.TrimSpace(role))
}

// Enforce 判定用户能否对资源执行操作
func (s *Service) Enforce(userID uint, object, action string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz not initialized")
	}
	return s.enforcer.Enforce(UserSubject(userID), object, action)
}

// EnforceRole 判定角色能否对资源执行操作
func (s *Service) EnforceRole(role, object, action string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz not initialized")
	}
	return s.enforcer.Enforce(RoleSubject(role), object, action)
}

// AssignRole 绑定用户角色（重复绑定为幂等）
func (s *Service) AssignRole(userID uint, role string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz not initialized")
	}
	_, err := s.enforcer.AddGroupingPolicy(UserSubject(userID), RoleSubject(role))
	return err
}

// seedRolePolicies 写入预置角色策略（已存在时跳过）
func (s *Service) seedRolePolicies() error {
	for _, seed := range builtinRolePolicies() {
		has, err := s.enforcer.HasPolicy(seed.Subject, seed.Object, seed.Action)
		if err != nil {
			return fmt.Errorf("check authz policy failed: %w", err)
		}
		if has {
			continue
		}
		if _, err := s.enforcer.AddPolicy(seed.Subject, seed.Object, seed.Action); err != nil {
			return fmt.Errorf("seed authz policy failed: %w", err)
		}
	}
	return nil
}

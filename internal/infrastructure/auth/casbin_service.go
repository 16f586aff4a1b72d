package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// RouteModel matches a role subject against route patterns and method regexes
const RouteModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer whose policies persist through gorm
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, err
	}
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

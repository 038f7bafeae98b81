package authz

import "github.com/commerce-next/internal/constants"

// builtinRolePolicies 预置角色策略矩阵
// 买家可对自己的评价、优惠券、钱包操作；卖家额外可登记商品。
func builtinRolePolicies() []Policy {
	buyer := RoleSubject(constants.UserRoleBuyer)
	seller := RoleSubject(constants.UserRoleSeller)
	return []Policy{
		{Subject: buyer, Object: "/api/v1/reviews", Action: "POST"},
		{Subject: buyer, Object: "/api/v1/reviews/:id", Action: "DELETE"},
		{Subject: buyer, Object: "/api/v1/coupons/*", Action: "*"},
		{Subject: buyer, Object: "/api/v1/wallet/*", Action: "*"},
		{Subject: buyer, Object: "/api/v1/me", Action: "GET"},
		{Subject: seller, Object: "/api/v1/reviews", Action: "POST"},
		{Subject: seller, Object: "/api/v1/reviews/:id", Action: "DELETE"},
		{Subject: seller, Object: "/api/v1/coupons/*", Action: "*"},
		{Subject: seller, Object: "/api/v1/wallet/*", Action: "*"},
		{Subject: seller, Object: "/api/v1/me", Action: "GET"},
		{Subject: seller, Object: "/api/v1/products", Action: "POST"},
	}
}

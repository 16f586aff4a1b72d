package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/domain"
)

// PolicyHandlers manages the casbin route policies
type PolicyHandlers struct {
	policies domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policies domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policies: policies}
}

type policyReq struct {
	Sub string `json:"sub" binding:"required"`
	Obj string `json:"obj" binding:"required"`
	Act string `json:"act" binding:"required"`
}

func (h *PolicyHandlers) List(c *gin.Context) {
	policies := h.policies.GetPolicies()
	if policies == nil {
		policies = [][]string{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "policies": policies})
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		RespondError(c, bindError(err))
		return
	}
	if err := h.policies.AddPolicy(r.Sub, r.Obj, r.Act); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		RespondError(c, bindError(err))
		return
	}
	if err := h.policies.RemovePolicy(r.Sub, r.Obj, r.Act); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

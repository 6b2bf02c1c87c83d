package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "agroio.app/errors"
)

func (s *Server) listCommunityPosts(c *gin.Context) {
	posts, err := s.communityService.ListPosts()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (s *Server) publishCommunityPost(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	post, err := s.communityService.PublishPost(req.Content, currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (s *Server) getPartnerStores(c *gin.Context) {
	stores, _, err := s.communityService.GetMap()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

func (s *Server) getCommunityUsers(c *gin.Context) {
	_, users, err := s.communityService.GetMap()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (s *Server) getFaq(c *gin.Context) {
	faqs, err := s.faqService.Search(c.Query("q"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, faqs)
}

package service

import (
	"strings"

	"agroio.app/errors"
	"agroio.app/models"
	"agroio.app/pkg/validation"
)

// CommunityService handles the community board and map
type CommunityService struct {
	communityRepo CommunityRepositoryInterface
}

// NewCommunityService creates a new community service
func NewCommunityService(communityRepo CommunityRepositoryInterface) *CommunityService {
	return &CommunityService{communityRepo: communityRepo}
}

// ListPosts returns community posts, newest first
func (s *CommunityService) ListPosts() ([]models.CommunityPost, error) {
	posts, err := s.communityRepo.GetPosts()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list posts", err)
	}
	return posts, nil
}

// PublishPost adds a message to the board on behalf of the author
func (s *CommunityService) PublishPost(content string, author *models.User) (*models.CommunityPost, error) {
	if !validation.IsNotEmpty(content) {
		return nil, errors.NewValidationError("content is required")
	}

	post := &models.CommunityPost{
		Author:    author.Name + " " + author.Surname,
		AvatarURL: "https://picsum.photos/seed/user/100/100",
		Content:   strings.TrimSpace(content),
	}
	if err := s.communityRepo.CreatePost(post); err != nil {
		return nil, errors.NewDatabaseError("failed to create post", err)
	}

	return post, nil
}

// GetMap returns partner stores and nearby farmers for the community map
func (s *CommunityService) GetMap() ([]models.PartnerStore, []models.CommunityUser, error) {
	stores, err := s.communityRepo.GetPartnerStores()
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to list partner stores", err)
	}
	users, err := s.communityRepo.GetCommunityUsers()
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to list community users", err)
	}
	return stores, users, nil
}

// FaqService handles the help section
type FaqService struct {
	faqRepo FaqRepositoryInterface
}

// NewFaqService creates a new FAQ service
func NewFaqService(faqRepo FaqRepositoryInterface) *FaqService {
	return &FaqService{faqRepo: faqRepo}
}

// Search returns FAQ entries whose question or answer contains the query,
// compared lowercased. An empty query returns everything.
func (s *FaqService) Search(query string) ([]models.FaqItem, error) {
	faqs, err := s.faqRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list FAQ entries", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return faqs, nil
	}

	matched := []models.FaqItem{}
	for _, faq := range faqs {
		if strings.Contains(strings.ToLower(faq.Question), query) ||
			strings.Contains(strings.ToLower(faq.Answer), query) {
			matched = append(matched, faq)
		}
	}
	return matched, nil
}

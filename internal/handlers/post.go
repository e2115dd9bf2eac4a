package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/middleware"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/models"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/repository"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *repository.PostRepository
	users *repository.UserRepository
	media *services.MediaService
}

func NewPostHandler(posts *repository.PostRepository, users *repository.UserRepository, media *services.MediaService) *PostHandler {
	return &PostHandler{
		posts: posts,
		users: users,
		media: media,
	}
}

// CreatePost stores the thumbnail first, then the record, then bumps the
// creator's post count. The count write is independent of the create and
// can lose an update under concurrent requests.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := middleware.UserID(c)

	title := c.PostForm("title")
	category := c.PostForm("category")
	description := c.PostForm("description")

	thumbnail, err := c.FormFile("thumbnail")
	if title == "" || category == "" || description == "" || err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields and choose a thumbnail."})
		return
	}

	if !models.ValidCategory(category) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("%s is not a supported category.", category)})
		return
	}

	newFilename, err := h.media.Save(thumbnail, services.MaxThumbnailSize)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Thumbnail too big. File should be less than 2mb."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Post couldn't be created."})
		return
	}

	newPost := models.Post{
		Title:       title,
		Category:    category,
		Description: description,
		Thumbnail:   newFilename,
		CreatorID:   userID,
	}

	if err := h.posts.Create(&newPost); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Post couldn't be created."})
		return
	}

	if err := h.users.AdjustPostCount(userID, 1); err != nil {
		log.Printf("could not increment post count for user %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, newPost)
}

// GetPosts returns the global feed, most recently updated first.
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.posts.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch posts."})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid post id."})
		return
	}

	post, findErr := h.posts.FindByID(uint(id))
	if findErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch post."})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetPostsByCategory(c *gin.Context) {
	category := c.Param("category")

	posts, err := h.posts.FindByCategory(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch posts."})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPostsByUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid user id."})
		return
	}

	posts, err := h.posts.FindByCreator(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch posts."})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// EditPost rewrites title/category/description and optionally replaces
// the thumbnail. Only the creator may edit.
func (h *PostHandler) EditPost(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid post id."})
		return
	}

	title := c.PostForm("title")
	category := c.PostForm("category")
	description := c.PostForm("description")

	if title == "" || category == "" || len(description) < 12 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	if !models.ValidCategory(category) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("%s is not a supported category.", category)})
		return
	}

	post, findErr := h.posts.FindByID(uint(id))
	if findErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch post."})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
		return
	}

	if post.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Post couldn't be edited."})
		return
	}

	updates := map[string]interface{}{
		"title":       title,
		"category":    category,
		"description": description,
	}

	if thumbnail, err := c.FormFile("thumbnail"); err == nil {
		newFilename, saveErr := h.media.Save(thumbnail, services.MaxThumbnailSize)
		if saveErr != nil {
			if errors.Is(saveErr, services.ErrFileTooLarge) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Thumbnail too big. Should be less than 2mb."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't update post."})
			return
		}
		h.media.DeleteQuietly(post.Thumbnail)
		updates["thumbnail"] = newFilename
	}

	updatedPost, err := h.posts.UpdateByID(uint(id), updates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't update post."})
		return
	}

	c.JSON(http.StatusOK, updatedPost)
}

// DeletePost removes the record, its thumbnail (best-effort) and
// decrements the creator's post count with an independent write.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post unavailable."})
		return
	}

	post, findErr := h.posts.FindByID(uint(id))
	if findErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch post."})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
		return
	}

	if post.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Post couldn't be deleted."})
		return
	}

	h.media.DeleteQuietly(post.Thumbnail)

	if err := h.posts.DeleteByID(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Post couldn't be deleted."})
		return
	}

	if err := h.users.AdjustPostCount(userID, -1); err != nil {
		log.Printf("could not decrement post count for user %d: %v", userID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Post %d deleted successfully.", id),
	})
}

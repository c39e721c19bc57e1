package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the post and comment endpoints behind auth.
func RegisterRoutes(router gin.IRouter, posts *PostHandler, comments *CommentHandler, auth gin.HandlerFunc) {
	router.GET("/post_getpost", auth, posts.GetPost)
	router.GET("/post_getposts", auth, posts.GetPosts)
	router.GET("/post_getpostupdate", auth, posts.GetPostUpdate)
	router.GET("/post_countposts", auth, posts.CountPosts)
	router.POST("/post_submitpost", auth, posts.SubmitPost)
	router.POST("/post_editpost", auth, posts.EditPost)
	router.POST("/post_deletepost", auth, posts.DeletePost)

	router.GET("/post_getcomments", auth, comments.GetComments)
	router.POST("/post_submitcomment", auth, comments.SubmitComment)
	router.POST("/post_editcomment", auth, comments.EditComment)
	router.POST("/post_deletecomment", auth, comments.DeleteComment)
}

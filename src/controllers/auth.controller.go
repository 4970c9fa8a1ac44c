package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"stowage/src/db"
	"stowage/src/lib"
	"stowage/src/lib/mailer"
	"stowage/src/models"
	"stowage/src/types"
	"stowage/src/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context) (id uint, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return 0, http.StatusBadRequest, err
	}

	user := models.User{
		Name:  body.Name,
		Email: body.Email,
	}
	gdb := db.GetDb()
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{Email: body.Email}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("email is already registered")
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return 0, http.StatusBadRequest, err
	}

	go func() {
		err := mailer.NewMailerMessage(&lib.SendMailInput{
			To:      []string{user.Email},
			Subject: "Welcome to Stowage",
			Body:    fmt.Sprintf("Hi %s, your account is ready. List your spare space or find storage near you.", user.Name),
		})
		if err != nil {
			log.Printf("Error queueing welcome mail for %s: %s\n", user.Email, err.Error())
		}
	}()

	return user.ID, http.StatusOK, nil
}

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	gdb := db.GetDb()
	var user models.User
	if err = gdb.
		Model(&models.User{}).
		Select("id", "name", "email").
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusNotFound, err
	}

	jwt, err := utils.GenerateJWT(user.Email, user.Name, user.ID)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}

	rd := lib.GetRedisClient()
	if err := rd.Set(ctx, fmt.Sprintf("%d:last_login", user.ID), time.Now().UnixMilli(), 0).Err(); err != nil {
		log.Printf("[redis] Error updating login cache: %s\n", err.Error())
	}

	return &jwt, http.StatusOK, nil
}

package routes

import (
	"catalog-service/controllers"
	"catalog-service/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up every catalog route. All routes require an
// authenticated staff identity; mutations additionally require admin.
func RegisterRoutes(
	r *gin.Engine,
	categories *controllers.CategoryController,
	products *controllers.ProductController,
	sales *controllers.SaleController,
) {
	categoryRoutes := r.Group("/categories")
	categoryRoutes.Use(middleware.AuthMiddleware())
	categoryRoutes.GET("", categories.ListCategories)

	categoryAdmin := categoryRoutes.Group("")
	categoryAdmin.Use(middleware.AdminOnly())
	categoryAdmin.POST("", categories.CreateCategory)
	categoryAdmin.PUT("/:id", categories.UpdateCategory)
	categoryAdmin.DELETE("/:id", categories.DeleteCategory)

	productRoutes := r.Group("/products")
	productRoutes.Use(middleware.AuthMiddleware())
	productRoutes.GET("", products.ListProducts)
	productRoutes.GET("/available", products.ListAvailableProducts)

	productAdmin := productRoutes.Group("")
	productAdmin.Use(middleware.AdminOnly())
	productAdmin.POST("", products.CreateProduct)
	productAdmin.PUT("/:id", products.UpdateProduct)
	productAdmin.DELETE("/:id", products.DeleteProduct)
	productAdmin.POST("/images", products.UploadImages)
	productAdmin.DELETE("/images", products.DeleteImage)

	saleRoutes := r.Group("/sales")
	saleRoutes.Use(middleware.AuthMiddleware())
	saleRoutes.GET("", sales.ListSales)
	saleRoutes.GET("/:id/products", sales.ListSaleProducts)

	saleAdmin := saleRoutes.Group("")
	saleAdmin.Use(middleware.AdminOnly())
	saleAdmin.POST("", sales.CreateSale)
	saleAdmin.PUT("/:id", sales.UpdateSale)
	saleAdmin.DELETE("/:id", sales.DeleteSale)
	saleAdmin.POST("/:id/products", sales.AddSaleProducts)
	saleAdmin.DELETE("/:id/products/:productId", sales.RemoveSaleProduct)
}

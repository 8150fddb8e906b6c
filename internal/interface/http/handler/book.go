package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-perflab/internal/application/book"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
	"github.com/xiebiao/bookstore-perflab/pkg/response"
)

// BookHandler 图书HTTP处理器(列表、详情、上架、搜索)
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	getBook     *appbook.GetBookUseCase
	createBook  *appbook.CreateBookUseCase
	searchBooks *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	createBook *appbook.CreateBookUseCase,
	searchBooks *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		getBook:     getBook,
		createBook:  createBook,
		searchBooks: searchBooks,
	}
}

// ListBooks 分页查询图书
// @Summary      图书列表
// @Description  按id升序分页,每本书附带avg_rating和review_count。leaky模式下每本书一条聚合SQL
// @Tags         图书
// @Produce      json
// @Param        page     query int false "页码,默认1"
// @Param        per_page query int false "每页数量,默认20,无上限"
// @Success      200 {object} appbook.ListBooksResponse
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	// 非法值交给用例回退到默认值,这里不返回400
	req := appbook.ListBooksRequest{
		Page:    dto.QueryInt(c, "page", appbook.DefaultPage),
		PerPage: dto.QueryInt(c, "per_page", appbook.DefaultPerPage),
	}

	result, err := h.listBooks.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 查询图书详情
// @Summary      图书详情
// @Description  返回图书完整信息、评分汇总和书评列表
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} appbook.BookDetail
// @Failure      400 {object} response.ErrorBody "id不是正整数"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := dto.PositiveInt64("id", c.Param("id"))
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, err.Error())
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateBook 上架图书
// @Summary      上架图书
// @Description  title、author、price必填;price可以是数字或数字字符串;未知字段会被拒绝
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} appbook.BookView
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      409 {object} response.ErrorBody "ISBN已存在"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, dto.BindingMessage(err))
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price.Decimal(),
		ISBN:          req.ISBN,
		Description:   req.Description,
		Stock:         req.Stock,
		Category:      req.Category,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// SearchBooks 按书名或作者搜索
// @Summary      搜索图书
// @Description  大小写不敏感的子串匹配(LIKE %q%,全表扫描)。q为空时返回空结果
// @Tags         图书
// @Produce      json
// @Param        q query string false "关键字"
// @Success      200 {object} appbook.SearchBooksResponse
// @Failure      500 {object} response.ErrorBody
// @Router       /api/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	result, err := h.searchBooks.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

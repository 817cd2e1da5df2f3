package httpapi

import (
	"net/http"
	"strconv"

	"campus-storefront/storefront-svc/internal/domain"
)

const maxImageUpload = 10 << 20

func (h *Handler) getSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Gateway.ListActiveSections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (h *Handler) createSection(w http.ResponseWriter, r *http.Request) {
	var section domain.Section
	if !decodeBody(w, r, &section) {
		return
	}
	if err := h.Catalog.CreateSection(r.Context(), &section); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.ProductWithStock
		err      error
	)
	if raw := r.URL.Query().Get("section_id"); raw != "" {
		sectionID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			writeMessage(w, http.StatusBadRequest, "section_id must be a number")
			return
		}
		products, err = h.Gateway.ListProductsBySection(r.Context(), sectionID)
	} else {
		products, err = h.Gateway.ListProductsWithStock(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, found, err := h.Gateway.GetProductWithStock(r.Context(), pathInt(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}
	if err := h.Catalog.CreateProduct(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}
	product.ID = pathInt(r, "id")
	found, err := h.Catalog.UpdateProduct(r.Context(), &product)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	found, err := h.Catalog.DeactivateProduct(r.Context(), pathInt(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getBestSellers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sales, err := h.Gateway.ListBestSellers(r.Context(), r.URL.Query().Get("date"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *Handler) getProductImages(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		writeMessage(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}
	images, err := h.Images.List(r.Context(), pathInt(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *Handler) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		writeMessage(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeMessage(w, http.StatusBadRequest, "File too large")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Error retrieving file")
		return
	}
	defer file.Close()

	image, err := h.Images.Upload(r.Context(), pathInt(r, "id"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, image)
}

func (h *Handler) deleteProductImage(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		writeMessage(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}
	if err := h.Images.Delete(r.Context(), pathInt(r, "id"), r.URL.Query().Get("key")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	productID := pathInt(r, "productId")
	current, err := h.Gateway.GetCurrentStock(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"product_id": productID, "current_quantity": current})
}

func (h *Handler) getDailyStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.Catalog.ListDailyStock(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stock)
}

type initializeStockRequest struct {
	Date     string `json:"date"`
	Quantity *int   `json:"quantity"`
}

func (h *Handler) initializeStock(w http.ResponseWriter, r *http.Request) {
	var req initializeStockRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	quantity := h.DefaultStock
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	created, err := h.Catalog.InitializeDailyStock(r.Context(), req.Date, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"created": created})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

// prepareVeiculoResponse renders a vehicle with its computed occupancy
// fields, including the zero-floored vagas_disponiveis.
func prepareVeiculoResponse(c *gin.Context, veiculo models.Veiculo) (gin.H, bool) {
	vagas, err := veiculo.VagasDisponiveis(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	emManutencao, err := veiculo.EmManutencao(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	resp := gin.H{
		"ID":                 veiculo.ID,
		"CreatedAt":          veiculo.CreatedAt,
		"UpdatedAt":          veiculo.UpdatedAt,
		"marca":              veiculo.Marca,
		"modelo":             veiculo.Modelo,
		"matricula":          veiculo.Matricula,
		"capacidade":         veiculo.Capacidade,
		"motorista_id":       veiculo.MotoristaID,
		"quilometragem":      veiculo.Quilometragem,
		"km_proxima_revisao": veiculo.KmProximaRevisao,
		"ativo":              veiculo.Ativo,
		"vagas_disponiveis":  vagas,
		"em_manutencao":      emManutencao,
		"estado_lotacao":     estadoLotacao(veiculo.Capacidade, vagas),
	}
	if veiculo.DataUltimaRevisao != nil {
		resp["data_ultima_revisao"] = veiculo.DataUltimaRevisao.Format(dateLayout)
	}
	if veiculo.Motorista != nil {
		resp["motorista"] = gin.H{
			"ID":             veiculo.Motorista.ID,
			"user_id":        veiculo.Motorista.UserID,
			"carta_conducao": veiculo.Motorista.CartaConducao,
		}
	}
	return resp, true
}

// estadoLotacao is the occupancy badge used by the front-end.
func estadoLotacao(capacidade uint, vagas int) string {
	if capacidade == 0 {
		return "erro capacidade. 0"
	}
	perc := float64(vagas) / float64(capacidade) * 100
	if perc == 0 {
		return "Lotado"
	}
	if perc < 20 {
		return "Critico"
	}
	return "OK"
}

func ListVeiculos(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var veiculos []models.Veiculo
	query := policy.VeiculoScope(config.DB.Model(&models.Veiculo{}), p).
		Preload("Motorista")
	if err := query.Find(&veiculos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing veiculos: " + err.Error()})
		return
	}

	data := make([]gin.H, 0, len(veiculos))
	for _, veiculo := range veiculos {
		resp, ok := prepareVeiculoResponse(c, veiculo)
		if !ok {
			return
		}
		data = append(data, resp)
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func GetVeiculo(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var veiculo models.Veiculo
	query := policy.VeiculoScope(config.DB.Model(&models.Veiculo{}), p).
		Preload("Motorista").
		Where("veiculos.id = ?", c.Param("id"))
	if err := query.First(&veiculo).Error; err != nil {
		respondNotFound(c)
		return
	}
	resp, ok := prepareVeiculoResponse(c, veiculo)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func CreateVeiculo(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input struct {
		Marca         string `json:"marca" binding:"required"`
		Modelo        string `json:"modelo" binding:"required"`
		Matricula     string `json:"matricula" binding:"required"`
		Capacidade    uint   `json:"capacidade" binding:"required"`
		MotoristaID   *uint  `json:"motorista_id"`
		Quilometragem uint   `json:"quilometragem"`
		Ativo         *bool  `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	veiculo := models.Veiculo{
		Marca:         input.Marca,
		Modelo:        input.Modelo,
		Matricula:     input.Matricula,
		Capacidade:    input.Capacidade,
		MotoristaID:   input.MotoristaID,
		Quilometragem: input.Quilometragem,
		Ativo:         true,
	}
	if input.Ativo != nil {
		veiculo.Ativo = *input.Ativo
	}
	if err := config.DB.Create(&veiculo).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	resp, ok := prepareVeiculoResponse(c, veiculo)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func UpdateVeiculo(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var veiculo models.Veiculo
	if err := config.DB.First(&veiculo, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		Marca         *string `json:"marca"`
		Modelo        *string `json:"modelo"`
		Matricula     *string `json:"matricula"`
		Capacidade    *uint   `json:"capacidade"`
		MotoristaID   *uint   `json:"motorista_id"`
		Quilometragem *uint   `json:"quilometragem"`
		Ativo         *bool   `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Marca != nil {
		veiculo.Marca = *input.Marca
	}
	if input.Modelo != nil {
		veiculo.Modelo = *input.Modelo
	}
	if input.Matricula != nil {
		veiculo.Matricula = *input.Matricula
	}
	if input.Capacidade != nil {
		veiculo.Capacidade = *input.Capacidade
	}
	if input.MotoristaID != nil {
		veiculo.MotoristaID = input.MotoristaID
	}
	if input.Quilometragem != nil {
		veiculo.Quilometragem = *input.Quilometragem
	}
	if input.Ativo != nil {
		veiculo.Ativo = *input.Ativo
	}

	// Full validation runs on every save, not only on creation.
	if err := config.DB.Save(&veiculo).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	resp, ok := prepareVeiculoResponse(c, veiculo)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func DeleteVeiculo(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var veiculo models.Veiculo
	if err := config.DB.First(&veiculo, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&veiculo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "veiculo removido"})
}
